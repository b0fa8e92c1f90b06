// Package graphz simulates a live equities market and keeps the ledger of a
// single virtual portfolio trading against it.
//
// The core functionalities include:
//   - Price Simulation: a random walk with a slight upward drift produces one
//     OHLC candle per instrument and per tick, kept in a fixed-length rolling
//     window (see Instrument and Market).
//   - Ledger Management: cash, holdings with a weighted average cost, and a
//     bounded newest-first transaction log, all computed with exact decimals.
//   - Trade Execution: immediate market buy and sell at the prevailing
//     simulated price (see Buy and Sell).
//   - Orchestration: the Engine runs the periodic tick, routes trades, emits
//     short-lived notifications and publishes immutable Snapshots to its
//     subscribers.
//
// Everything lives in process memory. This package is the foundation of the
// `graphz` command-line tool, which offers a terminal session, a headless
// simulation and an HTTP/WebSocket server on top of the same Engine.
package graphz
