package tx

import (
	"encoding/json"
	"errors"

	"github.com/slopestore/slopestored/internal/core/types"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// NewFromType creates a zero-valued transaction of the given type.
func NewFromType(txType Type) (Transaction, error) {
	switch txType {
	case TypeStoreCreate:
		return &StoreCreate{BaseTx: *NewBaseTx(TypeStoreCreate, types.ZeroAddress)}, nil
	case TypeStoreFreeze:
		return &StoreFreeze{BaseTx: *NewBaseTx(TypeStoreFreeze, types.ZeroAddress)}, nil
	case TypeStoreThaw:
		return &StoreThaw{BaseTx: *NewBaseTx(TypeStoreThaw, types.ZeroAddress)}, nil
	case TypeRecordCreate:
		return &RecordCreate{BaseTx: *NewBaseTx(TypeRecordCreate, types.ZeroAddress)}, nil
	case TypeNFTSell:
		return &NFTSell{BaseTx: *NewBaseTx(TypeNFTSell, types.ZeroAddress)}, nil
	case TypeNFTBuy:
		return &NFTBuy{BaseTx: *NewBaseTx(TypeNFTBuy, types.ZeroAddress)}, nil
	case TypeNFTRedeem:
		return &NFTRedeem{BaseTx: *NewBaseTx(TypeNFTRedeem, types.ZeroAddress)}, nil
	default:
		return nil, ErrUnknownTransactionType
	}
}

// FromJSON creates a Transaction from a JSON object. The object must
// carry a TransactionType field naming a supported type.
func FromJSON(data []byte) (Transaction, error) {
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, ErrUnknownTransactionType
	}

	txn, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ToJSON serializes a Transaction.
func ToJSON(txn Transaction) ([]byte, error) {
	return json.Marshal(txn)
}

// SupportedTypes returns all supported transaction types.
func SupportedTypes() []Type {
	return []Type{
		TypeStoreCreate,
		TypeStoreFreeze,
		TypeStoreThaw,
		TypeRecordCreate,
		TypeNFTSell,
		TypeNFTBuy,
		TypeNFTRedeem,
	}
}
