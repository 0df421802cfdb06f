package main

import (
	"testing"
)

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCmd()
	want := []string{"gxp", "ode", "csv2shp", "gpf", "ipf", "net2csv", "surfacefit", "gpftransform", "pedr"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

// The connect demo must exit cleanly whether or not the workstation service
// is reachable.
func TestConnectAlwaysSucceeds(t *testing.T) {
	t.Setenv("APPL_GXP_ADDRESS", "127.0.0.1:1")

	root := NewRootCmd()
	root.SetArgs([]string{"gxp", "connect"})
	if err := root.Execute(); err != nil {
		t.Fatalf("connect returned error: %v", err)
	}
}
