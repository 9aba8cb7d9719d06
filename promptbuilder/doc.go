/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder provides injection-resistant prompt construction,
// similar in spirit to SQL prepared statements. Templates are compile-time
// literals with {{name}} placeholders; untrusted data (PR titles, bodies,
// patches) is bound through standard encoders so it cannot alter the
// template structure. Prompts are immutable: every binding returns a new
// instance, and substituted values are never re-tokenized.
//
// Typical usage:
//
//	var tmpl = promptbuilder.MustNewPrompt(`Review this pull request:
//	{{pr_context}}`)
//
//	p, err := tmpl.BindJSON("pr_context", prContext)
//	if err != nil {
//		return err
//	}
//	prompt, err := p.Build()
package promptbuilder
