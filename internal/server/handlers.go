package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/tx"
	"github.com/slopestore/slopestored/internal/core/types"
)

// maxTxBody bounds submitted transaction payloads.
const maxTxBody = 1 << 20

type submitResponse struct {
	Result string `json:"result"`
	Code   int    `json:"code"`
	Slot   uint64 `json:"slot"`
	Error  string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// handleSubmit decodes a transaction from the request body, applies it, and
// flushes durable state on success.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTxBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	txn, err := tx.FromJSON(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.engine.Apply(txn)
	resp := submitResponse{
		Result: result.String(),
		Code:   int(result),
		Slot:   s.engine.Slot(),
	}
	if err != nil {
		resp.Error = err.Error()
	}

	if result.IsSuccess() && s.store != nil {
		if err := s.store.Flush(r.Context()); err != nil {
			log.Printf("flush after %s: %v", txn.TxType().Name(), err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleEntry reads a single ledger entry. The entry family is selected by
// the "type" query parameter: store, record, sold, account or holding.
func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := s.engine.View()
	program := s.engine.ProgramID()

	var (
		entry any
		err   error
	)
	switch q.Get("type") {
	case "store":
		name := q.Get("name")
		if name == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
			return
		}
		k, _, kerr := pda.Store(program, name)
		if kerr != nil {
			err = kerr
			break
		}
		entry, err = nilable(state.ReadStore(view, k))

	case "record":
		mint, perr := parseAddressParam(q.Get("mint"))
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: perr.Error()})
			return
		}
		k, _, kerr := pda.Record(program, mint)
		if kerr != nil {
			err = kerr
			break
		}
		entry, err = nilable(state.ReadRecord(view, k))

	case "sold":
		mint, perr := parseAddressParam(q.Get("mint"))
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: perr.Error()})
			return
		}
		index, perr := strconv.ParseUint(q.Get("index"), 10, 32)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "index must be a uint32"})
			return
		}
		k, _, kerr := pda.Sold(program, mint, uint32(index))
		if kerr != nil {
			err = kerr
			break
		}
		entry, err = nilable(state.ReadSold(view, k))

	case "account":
		addr, perr := parseAddressParam(q.Get("address"))
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: perr.Error()})
			return
		}
		entry, err = nilable(state.ReadAccountRoot(view, addr))

	case "holding":
		owner, perr := parseAddressParam(q.Get("owner"))
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: perr.Error()})
			return
		}
		mint, perr := parseAddressParam(q.Get("mint"))
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: perr.Error()})
			return
		}
		entry, err = nilable(state.ReadToken(view, pda.Holding(owner, mint)))

	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "type must be one of: store, record, sold, account, holding"})
		return
	}

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "entry not found"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func parseAddressParam(s string) (types.Address, error) {
	return types.ParseAddress(s)
}

// nilable collapses a typed nil pointer into an untyped nil so the handler
// can distinguish "absent" from "present" uniformly.
func nilable[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}
