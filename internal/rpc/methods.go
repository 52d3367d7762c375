package rpc

// registerAllMethods sets up the complete method registry.
func (s *Server) registerAllMethods() {
	// Server methods
	s.registry.Register("ping", &PingMethod{})
	s.registry.Register("server_info", &ServerInfoMethod{services: s.services})

	// Transaction methods
	s.registry.Register("submit", &SubmitMethod{services: s.services})
	s.registry.Register("tx", &TxMethod{services: s.services})
	s.registry.Register("account_tx", &AccountTxMethod{services: s.services})

	// Ledger state methods
	s.registry.Register("balance", &BalanceMethod{services: s.services})
	s.registry.Register("total_shares", &TotalSharesMethod{services: s.services})
	s.registry.Register("allowance", &AllowanceMethod{services: s.services})
	s.registry.Register("custody_balance", &CustodyBalanceMethod{services: s.services})

	// Presale methods
	s.registry.Register("presale_price", &PresalePriceMethod{services: s.services})
	s.registry.Register("whitelist_cap", &WhitelistCapMethod{services: s.services})
	s.registry.Register("contribution", &ContributionMethod{services: s.services})
	s.registry.Register("contribution_log", &ContributionLogMethod{services: s.services})
	s.registry.Register("proceeds", &ProceedsMethod{services: s.services})

	// Subscription methods (websocket only)
	s.registry.Register("subscribe", &SubscribeMethod{services: s.services})
	s.registry.Register("unsubscribe", &UnsubscribeMethod{})
}
