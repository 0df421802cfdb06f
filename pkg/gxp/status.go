package gxp

import (
	"fmt"
	"io"
	"os"
)

// CommStatus is the transport-layer status code for reaching the SOCET GXP
// workstation service. Negative values indicate failure, matching the
// HRESULT-style convention of the vendor communication layer.
type CommStatus int32

const (
	// CommOK is the transport success code.
	CommOK CommStatus = 0
	// CommFailure is the generic transport failure code (0x80004005).
	CommFailure CommStatus = -0x7FFFBFFB
)

// Failed reports whether the communication status is a failure code.
func (s CommStatus) Failed() bool {
	return s < 0
}

// ApiStatus is the domain-level outcome reported by the workstation after a
// request completes: an error code plus an optional descriptive string.
type ApiStatus struct {
	Code    int32
	Message string
}

// OK returns a successful ApiStatus.
func OK() ApiStatus {
	return ApiStatus{}
}

// Failed reports whether the API status carries a failure code.
func (s ApiStatus) Failed() bool {
	return s.Code < 0
}

// CheckStatus classifies the combined outcome of a workstation call and, on
// failure, prints a diagnostic block to stdout. It returns true iff both the
// communication status and the API error code indicate success.
func CheckStatus(comm CommStatus, api ApiStatus) bool {
	return FprintCheckStatus(os.Stdout, comm, api)
}

// FprintCheckStatus is CheckStatus writing its diagnostic to w.
//
// The failure block format is a stable contract: a literal " >> ERROR <<"
// marker, both codes as 8-digit zero-filled lowercase hex, one extra
// "GXP Error:" line when the error string is non-empty, then two blank lines.
// Both codes are printed whenever either side fails.
func FprintCheckStatus(w io.Writer, comm CommStatus, api ApiStatus) bool {
	if comm.Failed() || api.Failed() {
		fmt.Fprintln(w, " >> ERROR <<")
		fmt.Fprintf(w, "Communication Error: 0x%08x\n", uint32(comm))
		fmt.Fprintf(w, "GXP Error: 0x%08x\n", uint32(api.Code))
		if api.Message != "" {
			fmt.Fprintf(w, "GXP Error: %s\n", api.Message)
		}
		fmt.Fprint(w, "\n\n")
	}

	return !comm.Failed() && !api.Failed()
}
