package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Endpoint paths served by the host backend.
const (
	RuntimePath      = "/env-manager/runtime"
	EnvironmentsPath = "/env-manager/environments"
	VersionPath      = "/env-manager/version"
)

// RuntimeResponse is the 200 body of GET /env-manager/runtime.
type RuntimeResponse struct {
	Runtime         RuntimeEnv     `json:"runtime"`
	GPUEnvironment  GPUEnvironment `json:"gpu_environment"`
	ComfyEnvVersion string         `json:"comfy_env_version"`
}

// RuntimeEnv describes the interpreter and framework of the main environment.
type RuntimeEnv struct {
	PythonVersion string `json:"python_version,omitempty"`
	PyVersion     string `json:"py_version,omitempty"`
	TorchVersion  string `json:"torch_version,omitempty"`
	CUDAVersion   string `json:"cuda_version,omitempty"`
	OS            string `json:"os,omitempty"`
	Platform      string `json:"platform,omitempty"`
}

// GPUEnvironment is the accelerator section of the runtime response.
type GPUEnvironment struct {
	GPUs               []GPU  `json:"gpus"`
	DriverVersion      string `json:"driver_version,omitempty"`
	CUDARuntimeVersion string `json:"cuda_runtime_version,omitempty"`
	RecommendedCUDA    string `json:"recommended_cuda,omitempty"`
	DetectionMethod    string `json:"detection_method,omitempty"`
}

// GPU is one detected device as reported by the backend.
type GPU struct {
	Index             int              `json:"index"`
	Name              string           `json:"name"`
	ComputeCapability []int            `json:"compute_capability"`
	Architecture      string           `json:"architecture"`
	VRAMTotalMB       float64          `json:"vram_total_mb"`
	VRAMFreeMB        float64          `json:"vram_free_mb"`
	UUID              string           `json:"uuid,omitempty"`
	PCIBusID          string           `json:"pci_bus_id,omitempty"`
	DriverVersion     string           `json:"driver_version,omitempty"`
	PrecisionSupport  PrecisionSupport `json:"precision_support"`
}

// PrecisionSupport lists the numeric formats a device handles natively.
type PrecisionSupport struct {
	FP16           bool `json:"fp16"`
	FP16FullSpeed  bool `json:"fp16_full_speed"`
	BF16           bool `json:"bf16"`
	TF32           bool `json:"tf32"`
	FP8E4M3        bool `json:"fp8_e4m3"`
	FP8E5M2        bool `json:"fp8_e5m2"`
	INT8TensorCore bool `json:"int8_tensor_core"`
}

// EnvironmentsResponse is the 200 body of GET /env-manager/environments.
type EnvironmentsResponse struct {
	NodeEnvironments []NodeEnv  `json:"node_environments"`
	CacheDir         string     `json:"cache_dir"`
	CacheEnvs        []CacheEnv `json:"cache_envs"`
}

// NodeEnv is the environment status of one loaded custom node package.
type NodeEnv struct {
	NodeName     string        `json:"node_name"`
	NodeDir      string        `json:"node_dir,omitempty"`
	HasConfig    bool          `json:"has_config"`
	ConfigType   *string       `json:"config_type"`
	ConfigPath   *string       `json:"config_path"`
	HasEnv       bool          `json:"has_env"`
	EnvDir       *string       `json:"env_dir"`
	IsolatedDirs []IsolatedEnv `json:"isolated_dirs"`
}

// IsolatedEnv is a subdirectory of a node with its own isolation config.
type IsolatedEnv struct {
	Subdir     string  `json:"subdir"`
	ConfigPath *string `json:"config_path,omitempty"`
	HasEnv     bool    `json:"has_env"`
	EnvDir     *string `json:"env_dir"`
}

// CacheEnv is one environment in the central cache. The backend has sent both
// bare names and {name, path} objects; either form decodes.
type CacheEnv struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

// UnmarshalJSON accepts a string or an object.
func (c *CacheEnv) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*c = CacheEnv{Name: name}
		return nil
	}

	type plain CacheEnv
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("cache env: %w", err)
	}
	*c = CacheEnv(p)
	return nil
}

// ErrorPayload is the structured body of a non-2xx response.
type ErrorPayload struct {
	Error string `json:"error"`
}
