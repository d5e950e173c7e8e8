package api

import "path"

// RuntimeInfo is the render-ready view of the main environment.
type RuntimeInfo struct {
	PythonVersion             string
	FrameworkVersion          string
	AcceleratorRuntimeVersion string
	OSName                    string
	Platform                  string
	ExtensionVersion          string
	GPUDetectionMethod        string
	GPUs                      []GPUInfo
}

// GPUInfo is the render-ready view of one device.
// VRAMFreeMB never exceeds VRAMTotalMB.
type GPUInfo struct {
	Index                  int
	Name                   string
	Architecture           string
	ComputeCapabilityMajor int
	ComputeCapabilityMinor int
	HasComputeCapability   bool
	DriverVersion          string
	VRAMTotalMB            float64
	VRAMFreeMB             float64
	Precision              Precision
}

// Precision holds the five capability flags shown as badges.
type Precision struct {
	FP16           bool
	BF16           bool
	TF32           bool
	FP8E4M3        bool
	INT8TensorCore bool
}

// NodeEnvironment is the render-ready view of one node package.
type NodeEnvironment struct {
	NodeName        string
	HasConfig       bool
	ConfigType      string
	ConfigPath      string
	HasEnv          bool
	EnvDir          string
	IsolatedSubdirs []IsolatedDir
}

// IsolatedDir is a nested isolation config beneath a node.
type IsolatedDir struct {
	Subdir string
	HasEnv bool
	EnvDir string
}

// EnvironmentsReport is the render-ready view of the environments response.
type EnvironmentsReport struct {
	NodeEnvironments  []NodeEnvironment
	CacheDir          string
	CacheEnvironments []string
}

// NewRuntimeInfo flattens a runtime response.
func NewRuntimeInfo(resp RuntimeResponse) RuntimeInfo {
	python := resp.Runtime.PythonVersion
	if python == "" {
		python = resp.Runtime.PyVersion
	}

	info := RuntimeInfo{
		PythonVersion:             python,
		FrameworkVersion:          resp.Runtime.TorchVersion,
		AcceleratorRuntimeVersion: resp.Runtime.CUDAVersion,
		OSName:                    resp.Runtime.OS,
		Platform:                  resp.Runtime.Platform,
		ExtensionVersion:          resp.ComfyEnvVersion,
		GPUDetectionMethod:        resp.GPUEnvironment.DetectionMethod,
		GPUs:                      make([]GPUInfo, 0, len(resp.GPUEnvironment.GPUs)),
	}

	for _, g := range resp.GPUEnvironment.GPUs {
		info.GPUs = append(info.GPUs, newGPUInfo(g, resp.GPUEnvironment.DriverVersion))
	}

	return info
}

func newGPUInfo(g GPU, envDriver string) GPUInfo {
	total := g.VRAMTotalMB
	if total < 0 {
		total = 0
	}
	free := g.VRAMFreeMB
	switch {
	case free < 0:
		free = 0
	case free > total:
		free = total
	}

	driver := g.DriverVersion
	if driver == "" {
		driver = envDriver
	}

	info := GPUInfo{
		Index:         g.Index,
		Name:          g.Name,
		Architecture:  g.Architecture,
		DriverVersion: driver,
		VRAMTotalMB:   total,
		VRAMFreeMB:    free,
		Precision: Precision{
			FP16:           g.PrecisionSupport.FP16,
			BF16:           g.PrecisionSupport.BF16,
			TF32:           g.PrecisionSupport.TF32,
			FP8E4M3:        g.PrecisionSupport.FP8E4M3,
			INT8TensorCore: g.PrecisionSupport.INT8TensorCore,
		},
	}

	if len(g.ComputeCapability) >= 2 {
		info.ComputeCapabilityMajor = g.ComputeCapability[0]
		info.ComputeCapabilityMinor = g.ComputeCapability[1]
		info.HasComputeCapability = true
	}

	return info
}

// NewEnvironmentsReport flattens an environments response, keeping backend order.
func NewEnvironmentsReport(resp EnvironmentsResponse) EnvironmentsReport {
	report := EnvironmentsReport{
		NodeEnvironments:  make([]NodeEnvironment, 0, len(resp.NodeEnvironments)),
		CacheDir:          resp.CacheDir,
		CacheEnvironments: make([]string, 0, len(resp.CacheEnvs)),
	}

	for _, n := range resp.NodeEnvironments {
		env := NodeEnvironment{
			NodeName:   n.NodeName,
			HasConfig:  n.HasConfig,
			ConfigType: deref(n.ConfigType),
			ConfigPath: deref(n.ConfigPath),
			HasEnv:     n.HasEnv,
			EnvDir:     deref(n.EnvDir),
		}
		for _, sub := range n.IsolatedDirs {
			env.IsolatedSubdirs = append(env.IsolatedSubdirs, IsolatedDir{
				Subdir: sub.Subdir,
				HasEnv: sub.HasEnv,
				EnvDir: deref(sub.EnvDir),
			})
		}
		report.NodeEnvironments = append(report.NodeEnvironments, env)
	}

	for _, c := range resp.CacheEnvs {
		report.CacheEnvironments = append(report.CacheEnvironments, c.Name)
	}

	return report
}

// BaseName returns the last element of a slash-separated backend path, or "".
func BaseName(p string) string {
	if p == "" {
		return ""
	}
	return path.Base(p)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
