package tx

import (
	"errors"
	"fmt"

	"github.com/slopestore/slopestored/internal/core/types"
)

// MaxRate is the highest allowed platform fee rate, in whole percent.
const MaxRate = 100

// RecordBumps carries the caller-derived bumps for the two accounts a
// record creation initializes.
type RecordBumps struct {
	Record  uint8 `json:"Record"`
	Custody uint8 `json:"Custody"`
}

// RecordCreate initializes the escrow record and custody account for a
// mint. The caller is recorded as the initializer; the custody account is
// owned by the record's derived address, so only the program can release
// escrowed units.
type RecordCreate struct {
	BaseTx

	// Mint is the asset identity the record tracks (required).
	Mint types.Address `json:"Mint"`

	// StoreName names the store the record is created under (required).
	// A frozen store rejects record creation.
	StoreName string `json:"StoreName"`

	// Bumps are the caller-derived bumps for the record and custody
	// addresses.
	Bumps RecordBumps `json:"Bumps"`
}

// NewRecordCreate creates a new RecordCreate transaction.
func NewRecordCreate(account, mint types.Address, storeName string, bumps RecordBumps) *RecordCreate {
	return &RecordCreate{
		BaseTx:    *NewBaseTx(TypeRecordCreate, account),
		Mint:      mint,
		StoreName: storeName,
		Bumps:     bumps,
	}
}

// TxType returns the transaction type.
func (r *RecordCreate) TxType() Type { return TypeRecordCreate }

// Validate validates the RecordCreate transaction.
func (r *RecordCreate) Validate() error {
	if err := r.BaseTx.Validate(); err != nil {
		return err
	}
	if r.Mint.IsZero() {
		return errors.New("temMALFORMED: Mint is required")
	}
	if r.StoreName == "" {
		return errors.New("temMALFORMED: StoreName is required")
	}
	return nil
}

// NFTSell deposits one unit of the mint into custody and lists it at the
// given price and fee rate.
type NFTSell struct {
	BaseTx

	// Mint is the asset being listed (required).
	Mint types.Address `json:"Mint"`

	// StoreName names the store the listing runs through (required).
	// A frozen store rejects new listings.
	StoreName string `json:"StoreName"`

	// Price is the asking price in the smallest native unit.
	Price uint64 `json:"Price"`

	// Rate is the platform fee percentage, 0-100.
	Rate uint8 `json:"Rate"`
}

// NewNFTSell creates a new NFTSell transaction.
func NewNFTSell(account, mint types.Address, storeName string, price uint64, rate uint8) *NFTSell {
	return &NFTSell{
		BaseTx:    *NewBaseTx(TypeNFTSell, account),
		Mint:      mint,
		StoreName: storeName,
		Price:     price,
		Rate:      rate,
	}
}

// TxType returns the transaction type.
func (s *NFTSell) TxType() Type { return TypeNFTSell }

// Validate validates the NFTSell transaction.
func (s *NFTSell) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.Mint.IsZero() {
		return errors.New("temMALFORMED: Mint is required")
	}
	if s.StoreName == "" {
		return errors.New("temMALFORMED: StoreName is required")
	}
	if s.Rate > MaxRate {
		return fmt.Errorf("temBAD_RATE: rate %d exceeds %d", s.Rate, MaxRate)
	}
	return nil
}

// NFTBuy purchases the live listing for a mint. The price is split into
// the seller's share and the store owner's fee, the asset moves from
// custody to the buyer, and an immutable sold record is appended.
type NFTBuy struct {
	BaseTx

	// Mint is the asset being bought (required).
	Mint types.Address `json:"Mint"`

	// StoreName names the store collecting the platform fee (required).
	StoreName string `json:"StoreName"`
}

// NewNFTBuy creates a new NFTBuy transaction.
func NewNFTBuy(account, mint types.Address, storeName string) *NFTBuy {
	return &NFTBuy{
		BaseTx:    *NewBaseTx(TypeNFTBuy, account),
		Mint:      mint,
		StoreName: storeName,
	}
}

// TxType returns the transaction type.
func (b *NFTBuy) TxType() Type { return TypeNFTBuy }

// Validate validates the NFTBuy transaction.
func (b *NFTBuy) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if b.Mint.IsZero() {
		return errors.New("temMALFORMED: Mint is required")
	}
	if b.StoreName == "" {
		return errors.New("temMALFORMED: StoreName is required")
	}
	return nil
}

// NFTRedeem withdraws an unsold listing. Only the seller of record may
// redeem; the unit moves from custody back to the seller's holding.
type NFTRedeem struct {
	BaseTx

	// Mint is the asset being redeemed (required).
	Mint types.Address `json:"Mint"`
}

// NewNFTRedeem creates a new NFTRedeem transaction.
func NewNFTRedeem(account, mint types.Address) *NFTRedeem {
	return &NFTRedeem{
		BaseTx: *NewBaseTx(TypeNFTRedeem, account),
		Mint:   mint,
	}
}

// TxType returns the transaction type.
func (r *NFTRedeem) TxType() Type { return TypeNFTRedeem }

// Validate validates the NFTRedeem transaction.
func (r *NFTRedeem) Validate() error {
	if err := r.BaseTx.Validate(); err != nil {
		return err
	}
	if r.Mint.IsZero() {
		return errors.New("temMALFORMED: Mint is required")
	}
	return nil
}
