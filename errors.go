// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error taxonomy (§7):
//
//   - InvalidArgument: thread count out of range at New or IncThreads.
//   - ResourceExhausted: a chosen worker queue was full at Submit.
//   - LostWork is not an error value at all — it is surfaced only via
//     the pool's logger (see pool.go), because the operation that
//     produces it (DecThreads) semantically succeeds: the workers are
//     gone regardless of whether their residual items found a home.
//
// Codes are checked with status.Code(err), not errors.Is: each
// status.Errorf call produces a distinct error value, so sentinel
// identity comparison would never match.

func invalidArgumentf(format string, args ...any) error {
	return status.Error(codes.InvalidArgument, "tpool: "+fmt.Sprintf(format, args...))
}

func resourceExhaustedf(format string, args ...any) error {
	return status.Error(codes.ResourceExhausted, "tpool: "+fmt.Sprintf(format, args...))
}

// IsInvalidArgument reports whether err carries codes.InvalidArgument.
func IsInvalidArgument(err error) bool {
	return status.Code(err) == codes.InvalidArgument
}

// IsResourceExhausted reports whether err carries codes.ResourceExhausted.
func IsResourceExhausted(err error) bool {
	return status.Code(err) == codes.ResourceExhausted
}
