// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// PuzzleWordCount is the fixed length of a recovery phrase.
const PuzzleWordCount = 12

// ErrPuzzleMismatch is returned by [BackupPuzzle.Confirm] when every hidden
// slot is filled but the reconstruction does not match the original phrase.
var ErrPuzzleMismatch = errors.New("reconstructed phrase does not match")

// PuzzleState is one phase of the backup confirmation flow.
type PuzzleState int

const (
	// PuzzlePresenting shows all twelve words for the user to write down.
	PuzzlePresenting PuzzleState = iota
	// PuzzleVerifying hides a random subset and collects the user's entries.
	PuzzleVerifying
	// PuzzleRetrying is reached after a failed confirmation; a new
	// verification round must be started.
	PuzzleRetrying
	// PuzzleConfirmed means the user reconstructed the phrase exactly.
	// The puzzle no longer holds the words in this state.
	PuzzleConfirmed
)

// BackupPuzzle is the gate between "phrase displayed" and "phrase
// discarded". It never allows confirmation without the user typing back a
// randomly chosen subset of the words, so a user who skipped writing the
// phrase down cannot accidentally lose it.
//
// The puzzle is a plain state machine with no I/O; the TUI renders it and
// forwards keystrokes. Not safe for concurrent use.
type BackupPuzzle struct {
	words   [PuzzleWordCount]string
	state   PuzzleState
	hidden  []int
	entries map[int]string
	focus   int
}

// NewBackupPuzzle builds a puzzle over the given phrase. The phrase must be
// exactly twelve words.
func NewBackupPuzzle(mnemonic string) (*BackupPuzzle, error) {
	fields := strings.Fields(strings.TrimSpace(mnemonic))
	if len(fields) != PuzzleWordCount {
		return nil, fmt.Errorf("%w: phrase has %d words, want %d", ErrPolicyViolation, len(fields), PuzzleWordCount)
	}

	p := &BackupPuzzle{state: PuzzlePresenting, focus: -1}
	for i, w := range fields {
		p.words[i] = strings.ToLower(w)
	}
	return p, nil
}

// State returns the current phase.
func (p *BackupPuzzle) State() PuzzleState { return p.state }

// Words returns the full phrase for display. Only valid while presenting;
// once verification starts the user must work from their written copy.
func (p *BackupPuzzle) Words() ([]string, error) {
	if p.state != PuzzlePresenting {
		return nil, fmt.Errorf("%w: phrase is only shown before verification", ErrPolicyViolation)
	}
	out := make([]string, PuzzleWordCount)
	copy(out, p.words[:])
	return out, nil
}

// StartVerification hides 3 or 4 random positions and begins collecting
// entries. Also restarts a failed round.
func (p *BackupPuzzle) StartVerification() error {
	if p.state != PuzzlePresenting && p.state != PuzzleRetrying {
		return fmt.Errorf("%w: cannot start verification from this state", ErrPolicyViolation)
	}
	p.reshuffle()
	p.state = PuzzleVerifying
	return nil
}

// Reshuffle picks a fresh hidden subset and discards all entries. Allowed
// any time before final confirmation.
func (p *BackupPuzzle) Reshuffle() error {
	if p.state != PuzzleVerifying {
		return fmt.Errorf("%w: nothing to reshuffle", ErrPolicyViolation)
	}
	p.reshuffle()
	return nil
}

func (p *BackupPuzzle) reshuffle() {
	count := 3 + rand.IntN(2)
	perm := rand.Perm(PuzzleWordCount)
	p.hidden = append([]int(nil), perm[:count]...)
	for i := 1; i < len(p.hidden); i++ {
		for j := i; j > 0 && p.hidden[j-1] > p.hidden[j]; j-- {
			p.hidden[j-1], p.hidden[j] = p.hidden[j], p.hidden[j-1]
		}
	}
	p.entries = make(map[int]string, count)
	p.focus = p.hidden[0]
}

// Hidden returns the indices the user must fill, in ascending order.
func (p *BackupPuzzle) Hidden() []int {
	return append([]int(nil), p.hidden...)
}

// Focus returns the hidden index currently awaiting input, or -1 when
// every hidden slot holds a correct entry.
func (p *BackupPuzzle) Focus() int { return p.focus }

// Slot returns what the given position shows: the original word for
// visible positions, the user's entry (possibly empty) for hidden ones.
func (p *BackupPuzzle) Slot(index int) string {
	if index < 0 || index >= PuzzleWordCount {
		return ""
	}
	if p.state == PuzzleVerifying && p.isHidden(index) {
		return p.entries[index]
	}
	if p.state == PuzzleConfirmed {
		return ""
	}
	return p.words[index]
}

// Fill records the user's entry for a hidden position. Visible positions
// reject input. When the entry matches the original word the focus moves
// to the next unsolved hidden position.
func (p *BackupPuzzle) Fill(index int, word string) error {
	if p.state != PuzzleVerifying {
		return fmt.Errorf("%w: not verifying", ErrPolicyViolation)
	}
	if !p.isHidden(index) {
		return fmt.Errorf("%w: position %d is not hidden", ErrPolicyViolation, index)
	}
	p.entries[index] = strings.TrimSpace(word)
	p.advanceFocus()
	return nil
}

// Confirm finishes the round. It succeeds only when the visible words plus
// the user's entries reconstruct the original phrase exactly; on success
// the puzzle forgets the words. A complete but wrong reconstruction moves
// the puzzle to [PuzzleRetrying]; an incomplete one is rejected outright.
func (p *BackupPuzzle) Confirm() error {
	if p.state != PuzzleVerifying {
		return fmt.Errorf("%w: not verifying", ErrPolicyViolation)
	}
	if len(p.hidden) == 0 {
		return fmt.Errorf("%w: no hidden positions", ErrPolicyViolation)
	}
	for _, i := range p.hidden {
		if p.entries[i] == "" {
			return fmt.Errorf("%w: position %d is empty", ErrPolicyViolation, i)
		}
	}

	for _, i := range p.hidden {
		if !strings.EqualFold(strings.TrimSpace(p.entries[i]), p.words[i]) {
			p.state = PuzzleRetrying
			return ErrPuzzleMismatch
		}
	}

	p.state = PuzzleConfirmed
	clear(p.words[:])
	p.hidden = nil
	p.entries = nil
	p.focus = -1
	return nil
}

func (p *BackupPuzzle) isHidden(index int) bool {
	for _, h := range p.hidden {
		if h == index {
			return true
		}
	}
	return false
}

func (p *BackupPuzzle) advanceFocus() {
	for _, i := range p.hidden {
		if !strings.EqualFold(strings.TrimSpace(p.entries[i]), p.words[i]) {
			p.focus = i
			return
		}
	}
	p.focus = -1
}
