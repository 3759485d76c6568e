package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"tailscale.com/client/tailscale"

	"github.com/stephenc/dnstemplate/config"
)

// tsBindings defines one host variable per device in the tailnet, the
// variable name doubling as the device hostname.
func tsBindings(tailnet string) []config.Binding {
	tailscale.I_Acknowledge_This_API_Is_Unstable = true

	client := tailscale.NewClient(tailnet, tailscale.APIKey(os.Getenv("TS_API_KEY")))

	devices, err := client.Devices(context.Background(), tailscale.DeviceAllFields)
	if err != nil {
		log.Fatal(err)
	}

	bindings := make([]config.Binding, 0, len(devices))
	for _, dev := range devices {
		bindings = append(bindings, config.Binding{Name: dev.Hostname, Host: dev.Hostname})
	}

	return bindings
}
