package blockchain

import (
	"achievo/config"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Gateway is the ledger seam the rest of the application goes through.
// The production implementation talks to a NEAR RPC node; tests swap in
// fakes.
type Gateway interface {
	Account(accountID string) AccountHandle
}

// AccountHandle is a resolved ledger account that can bind contracts.
type AccountHandle interface {
	Contract(name string, viewMethods, changeMethods []string) ContractHandle
}

// ContractHandle is a contract bound to an account with explicit view and
// change method sets, mirroring the on-chain call contract.
type ContractHandle interface {
	CallView(method string, args interface{}) (json.RawMessage, error)
	CallChange(method string, args interface{}, opts *ChangeOpts) (json.RawMessage, error)
}

// ChangeOpts carries optional deposit/gas parameters for change calls.
type ChangeOpts struct {
	Deposit string // yoctoNEAR, attached to the call
	Gas     string // gas units
}

// DefaultGas is attached to change calls that do not specify their own.
const DefaultGas = "300000000000000" // 300 TGas

// Chain is the global ledger gateway. It is built once in main before the
// listener starts and never replaced afterwards.
var Chain Gateway

// Connect builds the global ledger client from configuration.
func Connect() {
	Chain = NewClient(config.AppConfig.NodeURL, config.AppConfig.RelayURL, config.AppConfig.NetworkID)
	log.Printf("NEAR connection initialized (%s, node %s)", config.AppConfig.NetworkID, config.AppConfig.NodeURL)
}

// Client is the RPC implementation of Gateway.
type Client struct {
	http      *resty.Client
	nodeURL   string
	relayURL  string
	networkID string
}

// NewClient creates a ledger client for the given node and signing relay.
func NewClient(nodeURL, relayURL, networkID string) *Client {
	return &Client{
		http:      resty.New(),
		nodeURL:   nodeURL,
		relayURL:  strings.TrimRight(relayURL, "/"),
		networkID: networkID,
	}
}

// Account resolves an account handle. Resolution is lazy on the NEAR side;
// an unknown account only surfaces when a call is executed.
func (c *Client) Account(accountID string) AccountHandle {
	return &account{client: c, id: accountID}
}

type account struct {
	client *Client
	id     string
}

// Contract binds a named contract with explicit view and change method sets.
// Calls to unbound methods fail locally without hitting the node.
func (a *account) Contract(name string, viewMethods, changeMethods []string) ContractHandle {
	return &contract{
		client: a.client,
		signer: a.id,
		name:   name,
		view:   toSet(viewMethods),
		change: toSet(changeMethods),
	}
}

func toSet(methods []string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		set[m] = true
	}
	return set
}

type contract struct {
	client *Client
	signer string
	name   string
	view   map[string]bool
	change map[string]bool
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result *viewResult `json:"result"`
	Error  *rpcError   `json:"error"`
}

type viewResult struct {
	Result []int  `json:"result"`
	Error  string `json:"error"`
}

type rpcError struct {
	Name  string          `json:"name"`
	Cause json.RawMessage `json:"cause"`
	Data  string          `json:"data"`
}

// CallView executes a read-only call_function query against the node.
func (ct *contract) CallView(method string, args interface{}) (json.RawMessage, error) {
	if !ct.view[method] {
		return nil, fmt.Errorf("view method %q is not bound on contract %s", method, ct.name)
	}

	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode args for %s: %v", method, err)
	}

	body := rpcRequest{
		JSONRPC: "2.0",
		ID:      "dontcare",
		Method:  "query",
		Params: map[string]interface{}{
			"request_type": "call_function",
			"finality":     "final",
			"account_id":   ct.name,
			"method_name":  method,
			"args_base64":  base64.StdEncoding.EncodeToString(argsJSON),
		},
	}

	resp, err := ct.client.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(ct.client.nodeURL)
	if err != nil {
		return nil, fmt.Errorf("view call %s failed: %v", method, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("view call %s failed: node returned %d", method, resp.StatusCode())
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(resp.Body(), &rpcResp); err != nil {
		return nil, fmt.Errorf("view call %s failed: invalid node response: %v", method, err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("view call %s failed: %s", method, rpcResp.Error.Name)
	}
	if rpcResp.Result == nil {
		return nil, fmt.Errorf("view call %s failed: empty node response", method)
	}
	if rpcResp.Result.Error != "" {
		return nil, fmt.Errorf("view call %s failed: %s", method, rpcResp.Result.Error)
	}

	raw := make([]byte, len(rpcResp.Result.Result))
	for i, b := range rpcResp.Result.Result {
		raw[i] = byte(b)
	}
	return json.RawMessage(raw), nil
}

type relayRequest struct {
	SignerID   string      `json:"signer_id"`
	ContractID string      `json:"contract_id"`
	MethodName string      `json:"method_name"`
	Args       interface{} `json:"args"`
	Deposit    string      `json:"deposit,omitempty"`
	Gas        string      `json:"gas"`
}

type relayResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// CallChange executes a state-mutating call through the signing relay, which
// holds the keys and submits the transaction on the signer's behalf.
func (ct *contract) CallChange(method string, args interface{}, opts *ChangeOpts) (json.RawMessage, error) {
	if !ct.change[method] {
		return nil, fmt.Errorf("change method %q is not bound on contract %s", method, ct.name)
	}

	body := relayRequest{
		SignerID:   ct.signer,
		ContractID: ct.name,
		MethodName: method,
		Args:       args,
		Gas:        DefaultGas,
	}
	if opts != nil {
		if opts.Deposit != "" {
			body.Deposit = opts.Deposit
		}
		if opts.Gas != "" {
			body.Gas = opts.Gas
		}
	}

	resp, err := ct.client.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(ct.client.relayURL + "/relay")
	if err != nil {
		return nil, fmt.Errorf("change call %s failed: %v", method, err)
	}

	var relayResp relayResponse
	if err := json.Unmarshal(resp.Body(), &relayResp); err != nil {
		return nil, fmt.Errorf("change call %s failed: invalid relay response: %v", method, err)
	}
	if resp.StatusCode() != 200 {
		if relayResp.Error != "" {
			return nil, fmt.Errorf("change call %s failed: %s", method, relayResp.Error)
		}
		return nil, fmt.Errorf("change call %s failed: relay returned %d", method, resp.StatusCode())
	}
	if relayResp.Error != "" {
		return nil, fmt.Errorf("change call %s failed: %s", method, relayResp.Error)
	}

	return relayResp.Result, nil
}

// DecodeUint reads a contract-returned identifier that may arrive as a JSON
// number or a quoted decimal string.
func DecodeUint(raw json.RawMessage) (uint64, error) {
	var n uint64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseUint(s, 10, 64)
	}
	return 0, fmt.Errorf("cannot decode %q as an id", string(raw))
}

// DecodeString reads a contract-returned value as a string, accepting bare
// JSON numbers as their decimal text.
func DecodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("cannot decode %q as a string", string(raw))
}
