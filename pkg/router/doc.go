// Package router implements a negotiated congestion, rip-up-and-reroute
// detailed router for FPGA-style fabrics.
//
// The package embeds a set of logical nets into an externally supplied
// routing graph (the Fabric) by choosing, for every sink of every net, a
// path of wires and switches from the net's source to that sink. Two
// nets are never allowed to hold the same wire or switch at the same
// time; when a search needs a resource someone else is holding, the
// router rips the holder up and re-routes it later, at a cost that rises
// every time that resource is disturbed. This is the "negotiation" that
// gives negotiated-congestion routing its name.
//
// The router never talks to the fabric's native encoding directly. All
// graph, timing and binding information flows through the Fabric
// interface (see fabric.go); callers supply a concrete implementation.
//
// A single Router value is not safe for concurrent use — the concurrency
// model is strictly single-threaded per invocation; the Fabric's
// Lock/Unlock pair guards the entire run. Running several
// independent designs concurrently is a matter of giving each its own
// Router and Fabric (see internal/parallel for a worker pool that does
// exactly that).
package router
