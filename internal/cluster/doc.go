// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package cluster holds the in-memory model of one node of a two-node
// keepalived pair.
//
// # Node vs shared settings
//
// NodeConfig differs between the two nodes (role, interface, priority,
// nopreempt). SharedConfig must be identical on both nodes: a mismatched
// group id silently creates two groups that never cooperate, and a
// mismatched secret makes each node discard the other's adverts. Nothing
// in this module can observe the peer, so keeping SharedConfig equal is the
// operator's job; the shared export written after apply exists to make that
// a copy instead of a retype.
//
// A Model is built fresh for every run and is never persisted.
package cluster
