package commands

import (
	"fmt"

	"github.com/ashgrove-health/dcmtok/decode"
)

// resolveTransferSyntax maps a short alias, or a bare transfer syntax UID,
// to a decode.TransferSyntax. This CLI never reads File Meta Information
// to negotiate one, so the caller must name it.
func resolveTransferSyntax(name string) (decode.TransferSyntax, error) {
	switch name {
	case "implicit-vr-le", decode.ImplicitVRLittleEndian.UID:
		return decode.ImplicitVRLittleEndian, nil
	case "explicit-vr-le", decode.ExplicitVRLittleEndian.UID:
		return decode.ExplicitVRLittleEndian, nil
	case "explicit-vr-be", decode.ExplicitVRBigEndian.UID:
		return decode.ExplicitVRBigEndian, nil
	default:
		return decode.TransferSyntax{}, fmt.Errorf("commands: unrecognized transfer syntax %q", name)
	}
}
