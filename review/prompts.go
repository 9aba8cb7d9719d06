/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import (
	"chainguard.dev/prreviewer/promptbuilder"
	"chainguard.dev/prreviewer/schema"
)

// systemInstructions define the reviewer role. The response schema is
// bound at pipeline construction from the Review type.
var systemInstructions = promptbuilder.MustNewPrompt(`ROLE: Expert code review assistant

TASK: Thoroughly and constructively review GitHub pull requests.
Analyze code quality, potential bugs, security issues, and suggest
improvements.

REVIEW GUIDELINES:
1. Provide specific, actionable feedback
2. Highlight both positive aspects and areas of improvement
3. Comment on code style, potential optimizations, and best practices
4. Identify potential security vulnerabilities
5. Cover the test plan: manual verification steps, automated tests added
   or modified, and edge cases considered
6. Suggest alternative implementations if applicable

OUTPUT FORMAT:
Respond with a single valid JSON object matching this schema:

{{response_schema}}

Do not wrap the JSON in prose. A markdown code fence is acceptable.`)

// userPrompt formats one review request. The pull request context is
// bound as JSON via Request.Bind.
var userPrompt = promptbuilder.MustNewPrompt(`Perform a comprehensive code review for this pull request.

The PR metadata, changed file list, and unified diffs follow as JSON:

{{pr_context}}

Please provide a detailed review addressing:
- Code quality and readability
- Potential bugs or logic errors
- Performance considerations
- Security implications
- Test plan
- Suggested improvements`)

// boundSystemInstructions binds the Review schema into the system prompt.
func boundSystemInstructions() (*promptbuilder.Prompt, error) {
	return systemInstructions.BindJSON("response_schema", schema.ReflectType[Review]())
}
