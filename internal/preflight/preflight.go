// Package preflight checks the inputs a run needs before any test case is built.
package preflight

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
)

// Inputs are the values checked before a run.
type Inputs struct {
	Wallet        string
	SignerKeyPath string
}

// Check validates the inputs in order: wallet set, key path set, key file present.
// It returns the first failure as a KindConfig or KindMissingArtifact error.
func Check(in Inputs) error {
	if strings.TrimSpace(in.Wallet) == "" {
		return errors.Config("wallet", "is required (set DERIVE_WALLET or wallet in the config file)")
	}
	if strings.TrimSpace(in.SignerKeyPath) == "" {
		return errors.Config("signer_key_path", "is required (set DERIVE_SIGNER_KEY_PATH or signer_key_path in the config file)")
	}
	return checkKeyFile(in.SignerKeyPath)
}

func checkKeyFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.MissingArtifact("signer key file", path)
	}
	if err != nil {
		e := errors.WrapKind(errors.KindMissingArtifact, err, "cannot access signer key file "+path)
		e.Path = path
		return e
	}
	if info.IsDir() {
		return &errors.BridgeError{
			Kind:    errors.KindMissingArtifact,
			Path:    path,
			Message: "signer key path is a directory, not a file: " + path,
		}
	}
	return nil
}

// Warnings reports inputs that pass Check but look wrong. The wallet is
// handed to the client as is, so a malformed address is only flagged.
func Warnings(in Inputs) []string {
	wallet := strings.TrimSpace(in.Wallet)
	if wallet == "" || common.IsHexAddress(wallet) {
		return nil
	}
	return []string{fmt.Sprintf("wallet %q is not a 20-byte hex address", wallet)}
}
