package chain

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"rubin.dev/node/envelope"
)

// TeleburnAddress derives the Counterparty-style burn address for id;
// declared to state the contract only, not called from index/updater.
func TeleburnAddress(id envelope.InscriptionID) string {
	payload := append(append([]byte(nil), id.TxID[:]...), byte(id.Index))
	hash := btcutil.Hash160(payload)
	addr, err := btcutil.NewAddressPubKeyHash(hash, &chaincfg.MainNetParams)
	if err != nil {
		return ""
	}
	return addr.EncodeAddress()
}
