// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunReportsEveryScenario(t *testing.T) {
	var buf bytes.Buffer
	ok := Run(&buf)
	if !ok {
		t.Fatalf("Run reported failure:\n%s", buf.String())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	scenarios := Scenarios()
	if len(lines) != len(scenarios) {
		t.Fatalf("got %d report lines, want %d", len(lines), len(scenarios))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "ok ") {
			t.Errorf("line %d = %q, want ok-prefixed", i, line)
		}
		if !strings.Contains(line, scenarios[i].Name) {
			t.Errorf("line %d = %q, missing scenario name %q", i, line, scenarios[i].Name)
		}
	}
}

func TestScenariosAreIndependentlyRunnable(t *testing.T) {
	for _, sc := range Scenarios() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			if err := sc.Run(); err != nil {
				t.Fatalf("%s: %v", sc.Name, err)
			}
		})
	}
}
