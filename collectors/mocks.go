package collectors

import "time"

// MockCoreResult returns a canned core identity section. Useful for
// previews and layout work without probing the host.
func MockCoreResult() *Result {
	return &Result{
		Collector: "core",
		Title:     "Core",
		Timestamp: time.Now(),
		Fields: []Field{
			NewField("OS", "Arch Linux x86_64"),
			NewField("Kernel", "6.18.2-arch1-1"),
			NewField("Uptime", "3d 4h"),
		},
	}
}

// MockHardwareResult returns a canned hardware section with usage
// gauges on the memory and storage rows.
func MockHardwareResult() *Result {
	return &Result{
		Collector: "hardware",
		Title:     "Hardware",
		Timestamp: time.Now(),
		Fields: []Field{
			NewField("CPU", "AMD Ryzen 7 7840U (16) @ 5.13 GHz"),
			NewField("GPU", "AMD Radeon 780M"),
			{Key: "Memory", Value: "11.9 GiB / 30.6 GiB (39%)", Percent: 39},
			{Key: "Storage", Value: "182.4 GiB / 476.3 GiB (38%)", Percent: 38},
		},
	}
}

// MockUserspaceResult returns a canned userspace section.
func MockUserspaceResult() *Result {
	return &Result{
		Collector: "userspace",
		Title:     "Userspace",
		Timestamp: time.Now(),
		Fields: []Field{
			NewField("Packages", "1432 (pacman), 18 (flatpak)"),
			NewField("Terminal", "foot"),
			NewField("Shell", "zsh 5.9"),
			NewField("WM", "Hyprland"),
		},
	}
}

// MockResults returns one canned result per section in banner order.
func MockResults() []*Result {
	return []*Result{
		MockCoreResult(),
		MockHardwareResult(),
		MockUserspaceResult(),
	}
}
