// cmd/hangman/main.go
//
// Console player: plays one game of Hangman on stdin/stdout.
//
//	hangman                      # random phrase from the embedded list
//	hangman -phrases ./my.txt    # random phrase from a file
//	hangman -secret "Lobster pot"

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/hangman"
	"github.com/robalobadob/hangman/internal/logging"
	"github.com/robalobadob/hangman/internal/phrases"
)

func main() {
	phrasesPath := flag.String("phrases", "", "phrase list file (defaults to the embedded list)")
	secret := flag.String("secret", "", "play this phrase instead of a random one")
	flag.Parse()

	logging.Setup("hangman-cli", "warn", "console")

	if *secret == "" {
		list, err := phrases.Load(*phrasesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load phrase list")
		}
		*secret = list.Random()
	}

	s, err := hangman.New(*secret)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start game")
	}
	if err := play(os.Stdin, os.Stdout, s); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

// play runs s to completion, reading one guess per line from in.
func play(in io.Reader, out io.Writer, s *hangman.Session) error {
	sc := bufio.NewScanner(in)
	for s.InProgress() {
		printState(out, s)
		fmt.Fprint(out, "guess> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}

		line := strings.TrimSpace(sc.Text())
		if utf8.RuneCountInString(line) != 1 {
			fmt.Fprintln(out, "Enter a single letter.")
			continue
		}
		c, _ := utf8.DecodeRuneInString(line)

		o, err := s.Guess(c)
		if errors.Is(err, hangman.ErrGameOver) {
			break
		}
		if err != nil {
			return err
		}
		switch o {
		case hangman.NotLetter:
			fmt.Fprintf(out, "%q is not a letter.\n", c)
		case hangman.Multiple:
			fmt.Fprintf(out, "You already guessed %q.\n", c)
		case hangman.Correct:
			fmt.Fprintln(out, "Yes!")
		case hangman.Wrong:
			fmt.Fprintln(out, "No.")
		}
	}

	fmt.Fprintln(out, s.Revealed())
	if s.Won() {
		fmt.Fprintf(out, "You won with %d wrong guesses.\n", s.WrongGuesses())
	} else {
		fmt.Fprintf(out, "You lost. The phrase was %q.\n", s.Secret())
	}
	return nil
}

func printState(out io.Writer, s *hangman.Session) {
	fmt.Fprintf(out, "\n%s\n", s.Revealed())
	fmt.Fprintf(out, "wrong: %d/%d", s.WrongGuesses(), hangman.MaxWrongGuesses)
	if g := s.PreviousGuesses(); len(g) > 0 {
		fmt.Fprintf(out, "  guessed: %s", string(g))
	}
	fmt.Fprintln(out)
}
