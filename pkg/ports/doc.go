/*
Package ports defines the driven ports (interfaces) for the patchbay core.

These interfaces decouple the deployment and session logic from external
implementations, allowing the core to work with real hardware over HTTP, an
in-memory simulated device, and various discovery caches.

# Key Interfaces

  - DeviceBackend: The device capability consumed by the session manager and
    deployment coordinator. Exclusivity is enforced remotely; the ownership
    token is the single source of truth for who may write.
  - DiscoveryStore: Persistence for discovered device records (memory, file,
    or redis backed).
*/
package ports
