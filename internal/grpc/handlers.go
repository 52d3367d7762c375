package grpc

import (
	"context"
	"encoding/hex"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
)

// SubmitRequest carries one signed transaction as JSON bytes.
type SubmitRequest struct {
	TxJSON []byte
}

// SubmitResponse reports the engine outcome of a submission.
type SubmitResponse struct {
	TxHash  string
	Result  string
	Message string
	Applied bool
}

// Submit applies a transaction through the ledger service.
func (s *Server) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	if len(req.TxJSON) == 0 {
		return nil, status.Error(codes.InvalidArgument, "tx_json is required")
	}
	result, err := s.ledgerService.Submit(ctx, req.TxJSON)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &SubmitResponse{
		TxHash:  result.Hash,
		Result:  result.Result,
		Message: result.Message,
		Applied: result.Applied,
	}, nil
}

// GetBalanceRequest identifies a subject/holder pair.
type GetBalanceRequest struct {
	Subject string
	Holder  string
}

// GetBalanceResponse returns the internal share balance.
type GetBalanceResponse struct {
	Balance uint64
}

// GetBalance returns the internal share balance of a holder.
func (s *Server) GetBalance(ctx context.Context, req *GetBalanceRequest) (*GetBalanceResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	balance, err := s.ledgerService.Balance(req.Subject, req.Holder)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &GetBalanceResponse{Balance: balance}, nil
}

// GetSubjectStateRequest identifies a subject.
type GetSubjectStateRequest struct {
	Subject string
}

// GetSubjectStateResponse aggregates the per-subject ledger state.
type GetSubjectStateResponse struct {
	TotalShares    uint64
	CustodyBalance uint64
	KeyPrice       string
	Proceeds       string
}

// GetSubjectState returns share totals, custody, presale price and
// unclaimed proceeds for one subject in a single call.
func (s *Server) GetSubjectState(ctx context.Context, req *GetSubjectStateRequest) (*GetSubjectStateResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	total, err := s.ledgerService.TotalShares(req.Subject)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	custody, err := s.ledgerService.CustodyBalance(req.Subject)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	price, err := s.ledgerService.KeyPrice(req.Subject)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	proceeds, err := s.ledgerService.Proceeds(req.Subject)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &GetSubjectStateResponse{
		TotalShares:    total,
		CustodyBalance: custody,
		KeyPrice:       price,
		Proceeds:       proceeds,
	}, nil
}

// GetAllowanceRequest identifies a subject/owner/spender triple.
type GetAllowanceRequest struct {
	Subject string
	Owner   string
	Spender string
}

// GetAllowanceResponse returns the remaining spender allowance.
type GetAllowanceResponse struct {
	Allowance uint64
}

// GetAllowance returns the remaining allowance of a spender.
func (s *Server) GetAllowance(ctx context.Context, req *GetAllowanceRequest) (*GetAllowanceResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	allowance, err := s.ledgerService.Allowance(req.Subject, req.Owner, req.Spender)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &GetAllowanceResponse{Allowance: allowance}, nil
}

// GetPresaleStateRequest identifies a subject and optionally one
// contributor account.
type GetPresaleStateRequest struct {
	Subject string
	Account string
}

// ContributionEntry is one ordered presale contribution.
type ContributionEntry struct {
	Account string
	Units   uint64
}

// GetPresaleStateResponse describes a subject's presale.
type GetPresaleStateResponse struct {
	KeyPrice string
	Log      []ContributionEntry

	// Cap and Contributed are filled when the request names an account.
	Cap         uint64
	Contributed uint64
}

// GetPresaleState returns the presale price, the ordered contribution
// log, and per-account whitelist state when an account is given.
func (s *Server) GetPresaleState(ctx context.Context, req *GetPresaleStateRequest) (*GetPresaleStateResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	price, err := s.ledgerService.KeyPrice(req.Subject)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	log, err := s.ledgerService.ContributionLog(req.Subject)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp := &GetPresaleStateResponse{KeyPrice: price}
	for _, entry := range log {
		resp.Log = append(resp.Log, ContributionEntry{Account: entry.Account, Units: entry.Units})
	}
	if req.Account != "" {
		cap, err := s.ledgerService.WhitelistCap(req.Subject, req.Account)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		contributed, err := s.ledgerService.Contribution(req.Subject, req.Account)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		resp.Cap = cap
		resp.Contributed = contributed
	}
	return resp, nil
}

// GetTransactionRequest identifies a transaction by its hex hash.
type GetTransactionRequest struct {
	Hash string
}

// TransactionRecord is one processed transaction.
type TransactionRecord struct {
	Hash     string
	Account  string
	TxType   string
	Result   string
	Applied  bool
	Sequence uint64
	Recorded time.Time
	TxJSON   []byte
	Metadata []byte
}

// GetTransactionResponse wraps one record.
type GetTransactionResponse struct {
	Transaction *TransactionRecord
}

// GetTransaction looks up a processed transaction by hash.
func (s *Server) GetTransaction(ctx context.Context, req *GetTransactionRequest) (*GetTransactionResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	record, err := s.ledgerService.Transaction(ctx, req.Hash)
	if err == history.ErrNotFound {
		return nil, status.Error(codes.NotFound, "transaction not found")
	}
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &GetTransactionResponse{Transaction: recordToProto(record)}, nil
}

// GetAccountTxRequest asks for an account's recent submissions.
type GetAccountTxRequest struct {
	Account string
	Limit   int
}

// GetAccountTxResponse lists records newest first.
type GetAccountTxResponse struct {
	Transactions []*TransactionRecord
}

// GetAccountTx returns an account's recent submissions.
func (s *Server) GetAccountTx(ctx context.Context, req *GetAccountTxRequest) (*GetAccountTxResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	records, err := s.ledgerService.AccountTransactions(ctx, req.Account, req.Limit)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp := &GetAccountTxResponse{}
	for _, record := range records {
		resp.Transactions = append(resp.Transactions, recordToProto(record))
	}
	return resp, nil
}

// GetServerInfoRequest is empty.
type GetServerInfoRequest struct{}

// GetServerInfoResponse describes the running node.
type GetServerInfoResponse struct {
	Standalone   bool
	ProxyAddress string
	Uptime       int64
	TxTotal      uint64
	TxApplied    uint64
}

// GetServerInfo describes the running node.
func (s *Server) GetServerInfo(ctx context.Context, req *GetServerInfoRequest) (*GetServerInfoResponse, error) {
	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	info := s.ledgerService.ServerInfo()
	return &GetServerInfoResponse{
		Standalone:   info.Standalone,
		ProxyAddress: info.ProxyAddress,
		Uptime:       info.Uptime,
		TxTotal:      info.TxTotal,
		TxApplied:    info.TxApplied,
	}, nil
}

func recordToProto(record *history.Record) *TransactionRecord {
	return &TransactionRecord{
		Hash:     hex.EncodeToString(record.Hash[:]),
		Account:  record.Account,
		TxType:   record.TxType,
		Result:   record.Result,
		Applied:  record.Applied,
		Sequence: record.Sequence,
		Recorded: record.Recorded,
		TxJSON:   record.RawTxn,
		Metadata: record.Metadata,
	}
}
