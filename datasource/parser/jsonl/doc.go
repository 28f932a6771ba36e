// Package jsonl parses JSON Lines data into rows. This parser uses https://github.com/tidwall/gjson to process data, and supports Schema column names formatted as gjson paths. Struct and list columns are decoded recursively from JSON objects and arrays.
package jsonl
