// Package parser implements the range expression grammar.
//
// A range expression is a comma-separated list of terms, where each term is
// either a single non-negative integer or an inclusive "low-high" range:
//
//	0,1,8, 10 - 20 , 15,17-21
//
// Spaces and tabs are skipped between all tokens. No other whitespace is
// recognized. The empty string (or whitespace only) is a valid expression
// denoting the empty selection.
//
// Scanning is a single left-to-right pass driven by a small state machine:
//
//	expectInt ──int──▶ afterInt ──','──▶ expectInt
//	                      │
//	                      └──'-'──▶ expectRangeEnd ──int──▶ afterRange ──','──▶ expectInt
//
// Any violation aborts the whole parse with an *Error carrying the kind of
// failure and the byte offset where it was detected. No partial result is
// ever returned.
package parser
