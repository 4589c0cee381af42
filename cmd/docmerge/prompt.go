package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// printBanner explains the pipeline before the interactive prompts, in the
// spirit of old batch tools: say what will happen, then ask.
func printBanner(w io.Writer) {
	fmt.Fprintln(w, "docmerge - document merger, converter, and word counter")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "This tool will:")
	fmt.Fprintln(w, "  1. Convert all DOC and DOCX files in the input folder to PDF.")
	fmt.Fprintln(w, "  2. Merge all PDFs (including the converted ones) into a single PDF,")
	fmt.Fprintln(w, "     in filename order.")
	fmt.Fprintln(w, "  3. Convert the merged PDF back into a DOCX file.")
	fmt.Fprintln(w, "  4. Count the frequency of the target words in the final document")
	fmt.Fprintln(w, "     (exact, case-sensitive, whole-word matching).")
	fmt.Fprintln(w, "  5. Write a timestamped audit log next to the output file.")
	fmt.Fprintln(w, "")
}

// promptLine prints label and reads one trimmed line.
func promptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptWords reads target words one per line until a blank line. Order is
// preserved; words are counted exactly as entered.
func promptWords(r *bufio.Reader, w io.Writer) ([]string, error) {
	fmt.Fprintln(w, "Enter words to search for (one per line). Press Enter on a blank line to finish:")
	var words []string
	for {
		line, err := r.ReadString('\n')
		word := strings.TrimSpace(line)
		if word == "" {
			if err != nil {
				// EOF without a closing blank line still ends the list.
				return words, nil
			}
			return words, nil
		}
		words = append(words, word)
		fmt.Fprintf(w, "Added search word: %s\n", word)
		if !matchable(word) {
			fmt.Fprintf(w, "Warning: %q can never match; words are compared against runs of letters and digits only.\n", word)
		}
		if err != nil {
			return words, nil
		}
	}
}

// matchable reports whether word can ever equal a counted token: tokens are
// maximal runs of letters and digits, so any other character in the word
// rules a match out.
func matchable(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
