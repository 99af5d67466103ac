// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

import "testing"

func TestPolicyString(t *testing.T) {
	tests := []struct {
		p    Policy
		want string
	}{
		{RoundRobin, "round_robin"},
		{LeastLoad, "least_load"},
		{Policy(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Policy(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestShutdownModeString(t *testing.T) {
	tests := []struct {
		m    ShutdownMode
		want string
	}{
		{Drain, "drain"},
		{Drop, "drop"},
		{ShutdownMode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("ShutdownMode(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
