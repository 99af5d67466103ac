// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"io"
	"time"
)

// Run executes every scenario in order, writing one TAP-style line per
// scenario to w, and reports whether all scenarios passed.
func Run(w io.Writer) (allPassed bool) {
	allPassed = true
	for i, sc := range Scenarios() {
		start := time.Now()
		err := sc.Run()
		elapsed := time.Since(start)

		if err == nil {
			fmt.Fprintf(w, "ok %d - %s    time: %dus\n", i+1, sc.Name, elapsed.Microseconds())
			continue
		}
		fmt.Fprintf(w, "not ok %d - %s: %v\n", i+1, sc.Name, err)
		allPassed = false
	}
	return allPassed
}
