// Package jsonl parses and writes JSON Lines data. Parsing uses https://github.com/tidwall/gjson, and supports Schema column names formatted as gjson paths.
package jsonl
