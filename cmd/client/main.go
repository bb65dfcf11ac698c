// Package main provides a CLI client for the order matching engine server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")

	submitCmd := flag.NewFlagSet("submit", flag.ExitOnError)
	submitPBU := submitCmd.String("pbu", "000100", "Participant/broker unit id")
	submitClOrdID := submitCmd.String("cl-ord-id", "1", "Client order id")
	submitSecurity := submitCmd.String("security", "SEC001", "Security id")
	submitSide := submitCmd.String("side", "buy", "Order side (buy/sell)")
	submitPrice := submitCmd.Int64("price", 10000, "Price in ticks")
	submitQty := submitCmd.Uint64("qty", 100, "Order quantity")

	cancelCmd := flag.NewFlagSet("cancel", flag.ExitOnError)
	cancelPBU := cancelCmd.String("pbu", "000100", "Participant/broker unit id")
	cancelClOrdID := cancelCmd.String("cl-ord-id", "2", "Client order id for the cancel itself")
	cancelOrigClOrdID := cancelCmd.String("orig-cl-ord-id", "1", "Client order id of the order to cancel")
	cancelSecurity := cancelCmd.String("security", "SEC001", "Security id")

	bookCmd := flag.NewFlagSet("book", flag.ExitOnError)
	bookSecurity := bookCmd.String("security", "SEC001", "Security id")
	bookLevels := bookCmd.Int("levels", 5, "Number of levels to show")

	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	flag.Parse()

	switch os.Args[1] {
	case "submit":
		submitCmd.Parse(os.Args[2:])
		submitOrder(*serverURL, *submitPBU, *submitClOrdID, *submitSecurity, *submitSide, *submitPrice, *submitQty)
	case "cancel":
		cancelCmd.Parse(os.Args[2:])
		cancelOrder(*serverURL, *cancelPBU, *cancelClOrdID, *cancelOrigClOrdID, *cancelSecurity)
	case "book":
		bookCmd.Parse(os.Args[2:])
		getBook(*serverURL, *bookSecurity, *bookLevels)
	case "stats":
		statsCmd.Parse(os.Args[2:])
		getStats(*serverURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Order Matching Engine Client

Usage:
  client <command> [options]

Commands:
  submit    Submit a new order
  cancel    Cancel an existing order
  book      View order book depth
  stats     View settlement/position statistics

Examples:
  client submit -pbu 000100 -cl-ord-id 1 -security SEC001 -side buy -price 10000 -qty 100
  client cancel -pbu 000100 -cl-ord-id 2 -orig-cl-ord-id 1 -security SEC001
  client book -security SEC001 -levels 10
  client stats`)
}

func submitOrder(server, pbu, clOrdID, security, side string, price int64, qty uint64) {
	body := map[string]interface{}{
		"pbu_id":      pbu,
		"cl_ord_id":   clOrdID,
		"security_id": security,
		"side":        side,
		"price":       price,
		"qty":         qty,
	}
	post(server+"/order", body)
}

func cancelOrder(server, pbu, clOrdID, origClOrdID, security string) {
	body := map[string]interface{}{
		"pbu_id":         pbu,
		"cl_ord_id":      clOrdID,
		"orig_cl_ord_id": origClOrdID,
		"security_id":    security,
	}
	post(server+"/cancel", body)
}

func getBook(server, security string, levels int) {
	get(fmt.Sprintf("%s/book?symbol=%s&levels=%d", server, security, levels))
}

func getStats(server string) {
	get(server + "/stats")
}

func post(url string, body map[string]interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal error: %v\n", err)
		os.Exit(1)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "request error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	printResponse(resp)
}

func get(url string) {
	resp, err := http.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	printResponse(resp)
}

func printResponse(resp *http.Response) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Printf("HTTP %d\n%s\n", resp.StatusCode, pretty.String())
}
