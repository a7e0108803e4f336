// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"net/http"

	"github.com/ava-labs/hypersdk/api"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
	"github.com/ava-labs/hypersdk/examples/launchvm/curves"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/genesis"
)

const JSONRPCEndpoint = "/launchapi"

var _ api.HandlerFactory[api.VM] = (*jsonRPCServerFactory)(nil)

type jsonRPCServerFactory struct{}

func (jsonRPCServerFactory) New(vm api.VM) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(consts.Name, NewJSONRPCServer(vm))
	return api.Handler{
		Path:    JSONRPCEndpoint,
		Handler: handler,
	}, err
}

type JSONRPCServer struct {
	vm api.VM
}

func NewJSONRPCServer(vm api.VM) *JSONRPCServer {
	return &JSONRPCServer{vm: vm}
}

type GenesisReply struct {
	Genesis *genesis.DefaultGenesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.vm.Genesis().(*genesis.DefaultGenesis)
	return nil
}

type GetTokenInfoArgs struct {
	TokenAddress codec.Address `json:"tokenAddress"`
}

// Amounts are decimal strings
type GetTokenInfoReply struct {
	Name        string        `json:"name"`
	Symbol      string        `json:"symbol"`
	Metadata    string        `json:"metadata"`
	TotalSupply string        `json:"totalSupply"`
	Owner       codec.Address `json:"owner"`
}

func (j *JSONRPCServer) GetTokenInfo(req *http.Request, args *GetTokenInfoArgs, reply *GetTokenInfoReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetTokenInfo")
	defer span.End()

	name, symbol, metadata, totalSupply, owner, err := storage.GetTokenInfoFromState(ctx, j.vm.ReadState, args.TokenAddress)
	if err != nil {
		return err
	}
	reply.Name = string(name)
	reply.Symbol = string(symbol)
	reply.Metadata = string(metadata)
	reply.TotalSupply = totalSupply.Dec()
	reply.Owner = owner
	return nil
}

type GetBalanceArgs struct {
	TokenAddress codec.Address `json:"tokenAddress"`
	Account      codec.Address `json:"account"`
}

type GetBalanceReply struct {
	Balance string `json:"balance"`
}

func (j *JSONRPCServer) GetBalance(req *http.Request, args *GetBalanceArgs, reply *GetBalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetBalance")
	defer span.End()

	balance, err := storage.GetTokenAccountBalanceFromState(ctx, j.vm.ReadState, args.TokenAddress, args.Account)
	if err != nil {
		return err
	}
	reply.Balance = balance.Dec()
	return nil
}

type GetLaunchArgs struct {
	TokenAddress codec.Address `json:"tokenAddress"`
}

type GetLaunchReply struct {
	LaunchAddress       codec.Address `json:"launchAddress"`
	Creator             codec.Address `json:"creator"`
	PlatformWallet      codec.Address `json:"platformWallet"`
	Curve               uint8         `json:"curve"`
	Status              uint8         `json:"status"`
	BasePrice           string        `json:"basePrice"`
	MaxPrice            string        `json:"maxPrice"`
	CurveSupply         string        `json:"curveSupply"`
	TokensSold          string        `json:"tokensSold"`
	FundsRaised         string        `json:"fundsRaised"`
	GraduationThreshold string        `json:"graduationThreshold"`
	Deadline            int64         `json:"deadline"`
	PlatformFeeBps      uint64        `json:"platformFeeBps"`
	CreatorFeeBps       uint64        `json:"creatorFeeBps"`
	CreatorFees         string        `json:"creatorFees"`
	PromoBudget         string        `json:"promoBudget"`
	PromoReleased       string        `json:"promoReleased"`
	SpotPrice           string        `json:"spotPrice"`
}

func (j *JSONRPCServer) GetLaunch(req *http.Request, args *GetLaunchArgs, reply *GetLaunchReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetLaunch")
	defer span.End()

	launchAddress := storage.LaunchAddress(args.TokenAddress)
	launch, err := storage.GetLaunchFromState(ctx, j.vm.ReadState, launchAddress)
	if err != nil {
		return err
	}

	reply.LaunchAddress = launchAddress
	reply.Creator = launch.Creator
	reply.PlatformWallet = launch.PlatformWallet
	reply.Curve = uint8(launch.Curve)
	reply.Status = uint8(launch.Status)
	reply.BasePrice = launch.BasePrice.Dec()
	reply.MaxPrice = launch.MaxPrice.Dec()
	reply.CurveSupply = launch.CurveSupply.Dec()
	reply.TokensSold = launch.TokensSold.Dec()
	reply.FundsRaised = launch.FundsRaised.Dec()
	reply.GraduationThreshold = launch.GraduationThreshold.Dec()
	reply.Deadline = launch.Deadline
	reply.PlatformFeeBps = launch.PlatformFeeBps
	reply.CreatorFeeBps = launch.CreatorFeeBps
	reply.CreatorFees = launch.CreatorFees.Dec()
	reply.PromoBudget = launch.PromoBudget.Dec()
	reply.PromoReleased = launch.PromoReleased.Dec()
	reply.SpotPrice = curves.Price(launch.Curve, launch.TokensSold, launch.CurveSupply, launch.BasePrice, launch.MaxPrice).Dec()
	return nil
}

type GetPairArgs struct {
	TokenA codec.Address `json:"tokenA"`
	TokenB codec.Address `json:"tokenB"`
}

type GetPairReply struct {
	PairAddress codec.Address `json:"pairAddress"`
	Token0      codec.Address `json:"token0"`
	Token1      codec.Address `json:"token1"`
	LPToken     codec.Address `json:"lpToken"`
	Reserve0    string        `json:"reserve0"`
	Reserve1    string        `json:"reserve1"`
}

func (j *JSONRPCServer) GetPair(req *http.Request, args *GetPairArgs, reply *GetPairReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetPair")
	defer span.End()

	pairAddress, err := storage.PairAddress(args.TokenA, args.TokenB)
	if err != nil {
		return err
	}
	pair, err := storage.GetPairFromState(ctx, j.vm.ReadState, pairAddress)
	if err != nil {
		return err
	}

	reply.PairAddress = pairAddress
	reply.Token0 = pair.Token0
	reply.Token1 = pair.Token1
	reply.LPToken = pair.LPToken
	reply.Reserve0 = pair.Reserve0.Dec()
	reply.Reserve1 = pair.Reserve1.Dec()
	return nil
}

type GetCoinAddressReply struct {
	CoinAddress codec.Address `json:"coinAddress"`
}

func (j *JSONRPCServer) GetCoinAddress(_ *http.Request, _ *struct{}, reply *GetCoinAddressReply) error {
	reply.CoinAddress = storage.CoinAddress
	return nil
}
