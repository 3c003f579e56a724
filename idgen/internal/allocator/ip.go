package allocator

import (
	"context"
	"fmt"
	"net"
)

// IPAllocator 基于本机 IPv4 地址最后一段的分配器
type IPAllocator struct{}

// NewIP 创建 IP 分配器
func NewIP() *IPAllocator {
	return &IPAllocator{}
}

// Allocate 取本机 IP 地址的最后一段作为 WorkerID，范围 [0, 255]
// 调用方需要按自身布局的工作节点位宽截断。
func (a *IPAllocator) Allocate(ctx context.Context) (int64, error) {
	ip, err := getLocalIP()
	if err != nil {
		return 0, fmt.Errorf("get local ip failed: %w", err)
	}
	return int64(ip[3]), nil
}

// getLocalIP 获取本机第一个非 loopback 的 IPv4 地址
func getLocalIP() (net.IP, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip := ipnet.IP.To4(); ip != nil {
				return ip, nil
			}
		}
	}
	return nil, fmt.Errorf("no valid ipv4 address found")
}
