package server

import (
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine renders run on
type HostInfo struct {
	CPUModel     string  `json:"cpuModel,omitempty"`
	CPUGHz       float64 `json:"cpuGHz,omitempty"`
	LogicalCores int     `json:"logicalCores"`
	TotalRAMGB   float64 `json:"totalRamGB,omitempty"`
	UsedRAMPct   float64 `json:"usedRamPercent,omitempty"`
}

// HealthResponse is returned by /api/health
type HealthResponse struct {
	Status    string   `json:"status"`
	GoVersion string   `json:"goVersion"`
	Workers   int      `json:"workers"`
	Publish   bool     `json:"publish"`
	Host      HostInfo `json:"host"`
}

// hostInfo gathers CPU and memory details. Fields that cannot be read
// are left empty.
func (s *Server) hostInfo() HostInfo {
	info := HostInfo{LogicalCores: runtime.NumCPU()}

	if cpus, err := cpu.Info(); err != nil {
		s.logger.Printf("Failed to read CPU info: %v", err)
	} else if len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
		info.CPUGHz = cpus[0].Mhz / 1000
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		s.logger.Printf("Failed to read memory info: %v", err)
	} else {
		info.TotalRAMGB = float64(vm.Total) / (1024 * 1024 * 1024)
		info.UsedRAMPct = vm.UsedPercent
	}

	return info
}

// handleHealth reports server status and host resources
func (s *Server) handleHealth(c echo.Context) error {
	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		GoVersion: runtime.Version(),
		Workers:   workers,
		Publish:   s.sink != nil,
		Host:      s.hostInfo(),
	})
}
