// Command notifygate-probe prints the notification server's identity and
// capabilities. Useful to check what the privileged side supports before
// deciding which request features to allow through.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/llehouerou/notifygate/internal/notify"
)

func main() {
	notifier, err := notify.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notifygate-probe: %v\n", err)
		os.Exit(1)
	}

	info, err := notifier.ServerInformation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notifygate-probe: server information: %v\n", err)
		os.Exit(1)
	}

	caps, err := notifier.Capabilities()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notifygate-probe: capabilities: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("server:       %s (%s)\n", info.Name, info.Vendor)
	fmt.Printf("version:      %s\n", info.Version)
	fmt.Printf("spec version: %s\n", info.SpecVersion)
	fmt.Printf("capabilities: %s\n", strings.Join(caps, ", "))
}
