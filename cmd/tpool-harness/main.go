// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"code.hybscloud.com/tpool/internal/harness"
)

func main() {
	app := harness.New()
	os.Exit(app.Execute())
}
