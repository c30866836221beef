package tx

import "fmt"

// Result represents a transaction engine result code.
//
// Codes follow the tes/tec/tef/tem convention: tes means applied, tec
// means rejected against current state (retry against updated state may
// differ), tef is a hard failure, tem is a malformed transaction.
type Result int

const (
	// TesSUCCESS: the transaction was applied.
	TesSUCCESS Result = 0

	// tec codes (100-199): rejected by ledger state, nothing applied.
	TecNO_TARGET        Result = 101 // record or entry does not exist
	TecNO_ENTRY         Result = 102 // store does not exist
	TecNO_PERMISSION    Result = 103 // caller lacks authority
	TecFROZEN           Result = 104 // store is frozen
	TecON_SALE          Result = 105 // record is already listed
	TecNOT_ON_SALE      Result = 106 // record is not listed
	TecUNFUNDED_PAYMENT Result = 107 // buyer cannot cover the price
	TecUNFUNDED_ASSET   Result = 108 // seller lacks the asset unit
	TecDUPLICATE        Result = 109 // sold record index collision

	// tef codes (-199 to -100): hard failures.
	TefALREADY  Result = -198 // entry already initialized
	TefINTERNAL Result = -192

	// tem codes (-299 to -200): malformed transactions.
	TemMALFORMED        Result = -299
	TemBAD_AMOUNT       Result = -298
	TemBAD_RATE         Result = -297 // rate outside [0,100]
	TemADDRESS_MISMATCH Result = -296 // supplied bump does not derive the address
	TemBAD_SRC_ACCOUNT  Result = -281
	TemINVALID          Result = -277
	TemUNKNOWN          Result = -276
)

var resultNames = map[Result]string{
	TesSUCCESS:          "tesSUCCESS",
	TecNO_TARGET:        "tecNO_TARGET",
	TecNO_ENTRY:         "tecNO_ENTRY",
	TecNO_PERMISSION:    "tecNO_PERMISSION",
	TecFROZEN:           "tecFROZEN",
	TecON_SALE:          "tecON_SALE",
	TecNOT_ON_SALE:      "tecNOT_ON_SALE",
	TecUNFUNDED_PAYMENT: "tecUNFUNDED_PAYMENT",
	TecUNFUNDED_ASSET:   "tecUNFUNDED_ASSET",
	TecDUPLICATE:        "tecDUPLICATE",
	TefALREADY:          "tefALREADY",
	TefINTERNAL:         "tefINTERNAL",
	TemMALFORMED:        "temMALFORMED",
	TemBAD_AMOUNT:       "temBAD_AMOUNT",
	TemBAD_RATE:         "temBAD_RATE",
	TemADDRESS_MISMATCH: "temADDRESS_MISMATCH",
	TemBAD_SRC_ACCOUNT:  "temBAD_SRC_ACCOUNT",
	TemINVALID:          "temINVALID",
	TemUNKNOWN:          "temUNKNOWN",
}

// String returns the canonical code name.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// ResultFromName resolves a result code by its canonical name.
func ResultFromName(name string) (Result, bool) {
	for r, n := range resultNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

// IsSuccess reports whether the transaction was applied.
func (r Result) IsSuccess() bool { return r == TesSUCCESS }

// IsTec reports whether the code is a state-dependent rejection.
func (r Result) IsTec() bool { return r >= 100 && r < 200 }

// IsTef reports whether the code is a hard failure.
func (r Result) IsTef() bool { return r <= -100 && r > -200 }

// IsTem reports whether the transaction was malformed.
func (r Result) IsTem() bool { return r <= -200 && r > -300 }
