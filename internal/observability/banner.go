package observability

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/term"
)

var startTime = time.Now()

const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return w
}

// PrintBanner prints the startup banner.
func PrintBanner(appName, version string) {
	width := termWidth()
	if width > 72 {
		width = 72
	}
	rule := strings.Repeat("─", width)

	fmt.Println(colorCyan + rule + colorReset)
	fmt.Printf("%s%s%s %s  •  go %s  •  %s\n",
		colorBold, strings.ToUpper(appName), colorReset,
		version, strings.TrimPrefix(runtime.Version(), "go"), runtime.GOOS)
	fmt.Println(colorCyan + rule + colorReset)
}

// Uptime reports time since process start.
func Uptime() time.Duration {
	return time.Since(startTime).Round(time.Second)
}
