// Command mcp-server is a standalone HTTP MCP server for gocalc.
//
// It exposes the gocalc tools as an HTTP endpoint for AI agent frameworks.
// Every request gets its own evaluation context, aborted when the client
// goes away or the timeout expires.
//
// Usage:
//
//	go run ./cmd/mcp-server -port 8080 -timeout 10s
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/njchilds90/gocalc"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	timeout := flag.Duration("timeout", 10*time.Second, "Evaluation time limit per tool call")
	precision := flag.Uint("precision", 0, "Default significant digits for approximations (0 keeps the library default)")
	flag.Parse()

	mux := http.NewServeMux()

	// POST /tool: handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in /tool: %v\n%s", rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req gocalc.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
			return
		}
		if *precision > 0 {
			req = withPrecision(req, *precision)
		}

		ctx, cancel := context.WithTimeout(r.Context(), *timeout)
		defer cancel()

		start := time.Now()
		resp := gocalc.HandleToolCallContext(ctx, req)
		if resp.Error != "" {
			log.Printf("tool %s failed after %s: %s", req.Tool, time.Since(start), resp.Error)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	// GET /schema: return tool schema for agent registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, gocalc.MCPToolSpec())
	})

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "ok",
			"time":      time.Now().UTC().Format(time.RFC3339),
			"functions": len(gocalc.FunctionNames()),
		})
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("gocalc MCP server listening on %s (timeout %s)", addr, *timeout)
	log.Printf("  POST /tool    execute a tool call")
	log.Printf("  GET  /schema  tool schema for agent registration")
	log.Printf("  GET  /health  health check")

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      *timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// withPrecision fills in options.precision when the caller left it out.
func withPrecision(req gocalc.ToolRequest, digits uint) gocalc.ToolRequest {
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}
	raw, present := req.Params["options"]
	opts, ok := raw.(map[string]interface{})
	if present && !ok {
		return req
	}
	if opts == nil {
		opts = map[string]interface{}{}
	}
	if _, ok := opts["precision"]; !ok {
		opts["precision"] = float64(digits)
	}
	req.Params["options"] = opts
	return req
}
