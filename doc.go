/*
Package patchbay is a pre-deployment safety layer for multi-slot instrument
devices: it manages the exclusive-ownership session protecting a device from
concurrent writers, validates signal-routing graphs before they reach
hardware, and coordinates the deploy-then-route sequence.

The library talks to hardware through a DeviceBackend port, so the same core
drives real devices over HTTP and the in-process simulator. Exclusivity is
enforced remotely: a successful claim issues an opaque token, the token is
the single source of truth for who may write, and a force-claim by another
client surfaces to the previous holder as a lost session on its next
operation.

# Usage

	backend := httpbackend.New("192.168.1.50")
	dev, err := patchbay.New(backend, "go")
	if err != nil {
		log.Fatal(err)
	}

	cfg := &domain.DeployConfig{
		Platform: "go",
		Slots: map[int]domain.SlotConfig{
			1: {Instrument: "Oscilloscope"},
		},
		Routing: []domain.Connection{
			{Source: "IN1", Destination: "Slot1InA"},
			{Source: "Slot1OutA", Destination: "OUT1"},
		},
	}

	err = dev.Deploy(context.Background(), cfg, session.ClaimOptions{})

Deploy claims the device, applies the configuration, and releases the claim
on every exit path. Routing problems are caught locally and exhaustively
before the device is touched; after a backend failure the returned error
identifies exactly how far the deployment got.
*/
package patchbay
