// Copyright (c) 2021-2024 SigScalr, Inc.
//
// This file is part of SigLens Observability Solution
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package systeminfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	log "github.com/sirupsen/logrus"
)

// SystemInfo describes the machine a benchmark ran on.
type SystemInfo struct {
	Hostname   string     `json:"hostname"`
	OS         string     `json:"os"`
	Platform   string     `json:"platform"`
	KernelArch string     `json:"kernel_arch"`
	CPUModel   string     `json:"cpu_model"`
	VCPU       int        `json:"v_cpu"`
	Memory     MemoryInfo `json:"memory"`
	GoVersion  string     `json:"go_version"`
	GOMAXPROCS int        `json:"gomaxprocs"`
}

type MemoryInfo struct {
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// Collect gathers host details. Any probe that fails is logged and leaves its
// fields at their zero value.
func Collect() SystemInfo {
	info := SystemInfo{
		OS:         runtime.GOOS,
		KernelArch: runtime.GOARCH,
		VCPU:       runtime.NumCPU(),
		GoVersion:  runtime.Version(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}

	hostInfo, err := host.Info()
	if err != nil {
		log.Warnf("Collect: Failed to retrieve host info: %v", err)
	} else {
		info.Hostname = hostInfo.Hostname
		info.OS = hostInfo.OS
		info.Platform = hostInfo.Platform
		if hostInfo.PlatformVersion != "" {
			info.Platform += " " + hostInfo.PlatformVersion
		}
		if hostInfo.KernelArch != "" {
			info.KernelArch = hostInfo.KernelArch
		}
	}

	cpuInfo, err := cpu.Info()
	if err != nil {
		log.Warnf("Collect: Failed to retrieve CPU info: %v", err)
	} else if len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}

	logical, err := cpu.Counts(true)
	if err != nil {
		log.Warnf("Collect: Failed to retrieve CPU count: %v", err)
	} else if logical > 0 {
		info.VCPU = logical
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		log.Warnf("Collect: Failed to retrieve memory info: %v", err)
	} else {
		info.Memory = MemoryInfo{
			Total:       memInfo.Total,
			Free:        memInfo.Free,
			UsedPercent: memInfo.UsedPercent,
		}
	}

	return info
}
