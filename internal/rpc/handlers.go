package rpc

import (
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
)

func decodeParams(params json.RawMessage, into any) *RpcError {
	if params == nil {
		return RpcErrorInvalidParams("missing params")
	}
	if err := json.Unmarshal(params, into); err != nil {
		return RpcErrorInvalidParams(err.Error())
	}
	return nil
}

// PingMethod answers connectivity probes with an empty success.
type PingMethod struct{}

func (m *PingMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	return map[string]any{}, nil
}

// ServerInfoMethod reports node status.
type ServerInfoMethod struct {
	services *Services
}

func (m *ServerInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	return map[string]any{"info": m.services.Ledger.ServerInfo()}, nil
}

// SubmitMethod applies a transaction.
// Params: {"tx_json": {...}}
type SubmitMethod struct {
	services *Services
}

func (m *SubmitMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		TxJSON json.RawMessage `json:"tx_json"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if len(request.TxJSON) == 0 {
		return nil, RpcErrorInvalidParams("tx_json is required")
	}
	result, err := m.services.Ledger.Submit(ctx.Context, request.TxJSON)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	return result, nil
}

// TxMethod looks up a processed transaction by hash.
// Params: {"transaction": "<hex hash>"}
type TxMethod struct {
	services *Services
}

func (m *TxMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Transaction string `json:"transaction"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	record, err := m.services.Ledger.Transaction(ctx.Context, request.Transaction)
	if errors.Is(err, history.ErrNotFound) {
		return nil, NewRpcError("txnNotFound", "Transaction not found.")
	}
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return recordToJSON(record), nil
}

// AccountTxMethod returns an account's recent submissions.
// Params: {"account": "0x..", "limit": 20}
type AccountTxMethod struct {
	services *Services
}

func (m *AccountTxMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Account string `json:"account"`
		Limit   int    `json:"limit"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	records, err := m.services.Ledger.AccountTransactions(ctx.Context, request.Account, request.Limit)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		out = append(out, recordToJSON(record))
	}
	return map[string]any{
		"account":      request.Account,
		"transactions": out,
	}, nil
}

func recordToJSON(record *history.Record) map[string]any {
	out := map[string]any{
		"tx_hash":       hex.EncodeToString(record.Hash[:]),
		"account":       record.Account,
		"tx_type":       record.TxType,
		"engine_result": record.Result,
		"applied":       record.Applied,
		"sequence":      record.Sequence,
		"recorded":      record.Recorded,
	}
	if len(record.RawTxn) > 0 {
		out["tx_json"] = json.RawMessage(record.RawTxn)
	}
	if len(record.Metadata) > 0 {
		out["meta"] = json.RawMessage(record.Metadata)
	}
	return out
}

// BalanceMethod returns the internal share balance of a holder.
// Params: {"subject": "0x..", "holder": "0x.."}
type BalanceMethod struct {
	services *Services
}

func (m *BalanceMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
		Holder  string `json:"holder"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	balance, err := m.services.Ledger.Balance(request.Subject, request.Holder)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject": request.Subject,
		"holder":  request.Holder,
		"balance": balance,
	}, nil
}

// TotalSharesMethod returns the sum of internal balances for a subject.
type TotalSharesMethod struct {
	services *Services
}

func (m *TotalSharesMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	total, err := m.services.Ledger.TotalShares(request.Subject)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject":      request.Subject,
		"total_shares": total,
	}, nil
}

// AllowanceMethod returns a spender's remaining allowance.
type AllowanceMethod struct {
	services *Services
}

func (m *AllowanceMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
		Owner   string `json:"owner"`
		Spender string `json:"spender"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	allowance, err := m.services.Ledger.Allowance(request.Subject, request.Owner, request.Spender)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject":   request.Subject,
		"owner":     request.Owner,
		"spender":   request.Spender,
		"allowance": allowance,
	}, nil
}

// CustodyBalanceMethod returns venue-side custody for a subject.
type CustodyBalanceMethod struct {
	services *Services
}

func (m *CustodyBalanceMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	custody, err := m.services.Ledger.CustodyBalance(request.Subject)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject": request.Subject,
		"custody": custody,
	}, nil
}

// PresalePriceMethod returns the presale unit price of a subject.
type PresalePriceMethod struct {
	services *Services
}

func (m *PresalePriceMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	price, err := m.services.Ledger.KeyPrice(request.Subject)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject":   request.Subject,
		"key_price": price,
	}, nil
}

// WhitelistCapMethod returns an account's unspent presale cap.
type WhitelistCapMethod struct {
	services *Services
}

func (m *WhitelistCapMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
		Account string `json:"account"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	cap, err := m.services.Ledger.WhitelistCap(request.Subject, request.Account)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject": request.Subject,
		"account": request.Account,
		"cap":     cap,
	}, nil
}

// ContributionMethod returns an account's accepted presale units.
type ContributionMethod struct {
	services *Services
}

func (m *ContributionMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
		Account string `json:"account"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	units, err := m.services.Ledger.Contribution(request.Subject, request.Account)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject": request.Subject,
		"account": request.Account,
		"units":   units,
	}, nil
}

// ContributionLogMethod returns the pending settlement queue.
type ContributionLogMethod struct {
	services *Services
}

func (m *ContributionLogMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	entries, err := m.services.Ledger.ContributionLog(request.Subject)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject":       request.Subject,
		"contributions": entries,
	}, nil
}

// ProceedsMethod returns a subject's unclaimed presale proceeds.
type ProceedsMethod struct {
	services *Services
}

func (m *ProceedsMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var request struct {
		Subject string `json:"subject"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	proceeds, err := m.services.Ledger.Proceeds(request.Subject)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	return map[string]any{
		"subject":  request.Subject,
		"proceeds": proceeds,
	}, nil
}
