// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package tpool

// raceEnabled is true when the race detector is active. Used by tests
// to skip concurrent exercises of the queue's CAS protocol, which the
// race detector cannot verify (it does not model cross-variable
// acquire-release ordering).
const raceEnabled = true
