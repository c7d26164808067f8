/*
Package domain contains the core domain models for the patchbay deployment layer.

It defines the port and connection vocabulary of the routing matrix, the slot
configuration model used for deployments, and the shared error taxonomy. This
package is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Port / PortCategory: A point in the routing matrix, either a physical
    front-panel connector or a per-slot virtual port.
  - Connection: An ordered source→destination pair in the routing matrix.
  - SlotConfig / DeployConfig: What to deploy into which slot, and how to
    route signals between slots and physical ports.
  - DeviceState: A client-side mirror of the remote device's slot and
    routing state. The device itself remains the source of truth.
*/
package domain
