// Package probe gathers a one-shot snapshot of host characteristics.
//
// A Collector runs a fixed sequence of probes on the calling goroutine:
//
//   - platform: operating system, kernel release, hostname, virtualization
//   - cpu: vendor, architecture, core counts, model, load averages
//   - memory: physical and swap memory
//   - filesystem: type, mount, drive kind and usage of a few well-known paths
//   - gpu: accelerators reported by nvidia-smi or PCI enumeration
//   - io: sequential write/read throughput of a temporary file
//
// Every probe is best-effort. A failing lookup is logged at debug level and the
// corresponding report key is left out; a panicking probe is recovered and logged.
// Nothing a probe does can prevent the report from being produced.
package probe
