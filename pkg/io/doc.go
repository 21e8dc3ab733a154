// Package io reads structure and data files and writes rendered outputs.
//
// # Structure Files
//
// Structure files use the Vienna layout produced by RNAfold and friends:
//
//	>tRNA-Phe
//	GCGGAUUUAGCUCAGUUGGGAGAGCGCCAGACUGAAGAUCUGGAGGUCCUGUGUUCGAUCCACAGAAUUCGCACCA
//	(((((((..((((........)))).(((((.......))))).....(((((.......))))))))))))....  (-21.60)
//
// A record starts at a ">" header line. Its last non-empty line is the
// dot-bracket structure, optionally followed by a parenthesised free
// energy; any lines before it form the sequence. A record with a single
// line has no sequence. Lines starting with "#" are comments. A file
// without headers holds one anonymous record.
//
// Use [ImportVienna] to read a file, or [ReadVienna] to read from any
// io.Reader. [WriteVienna] writes records back in the same layout.
//
// # Data Files
//
// Data files hold one numeric value per residue, separated by commas,
// semicolons or whitespace, across any number of lines. [ImportData]
// reads them with the same grammar as an inline data string.
//
// # Outputs
//
// [WriteOutputs] writes rendered artifacts next to each other, as
// <base>.<format>.
package io
