// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package synthesis

import (
	"fmt"
	"strings"

	"github.com/poiesic/veridex/core"
)

const answerResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "answer": {
      "type": "string"
    },
    "confidence": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    },
    "knowledge_gaps": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["answer", "confidence", "knowledge_gaps"],
  "additionalProperties": false
}`

const synthesisPromptTemplate = `You answer questions using ONLY the evidence provided by the user. The evidence consists of document excerpts and extracted claims, each with a confidence score, plus any known conflicts between claims.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Ground every statement in the provided evidence. Do not use outside knowledge. Do not hallucinate.
- %s
- When claims conflict, present both positions and say which source carries more authority.
- "confidence" reflects how well the evidence supports the answer: near 1.0 when high-confidence claims agree, lower when evidence is thin or conflicting.
- List in "knowledge_gaps" any parts of the question the evidence does not cover. Use [] when the evidence is sufficient.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// answerShapes maps each query type to the instruction controlling the
// answer's form.
var answerShapes = map[core.QueryType]string{
	core.QueryTypeFactual:     "Answer with a direct factual statement. Lead with the fact itself.",
	core.QueryTypeProcedural:  "Answer with ordered steps, one per line, in the order they must be performed.",
	core.QueryTypeConceptual:  "Answer with an explanation that builds from the underlying ideas to the specifics.",
	core.QueryTypeComparative: "Answer with a side-by-side contrast naming the dimensions on which the options differ.",
}

// buildSystemPrompt renders the system prompt for a query type.
func buildSystemPrompt(queryType core.QueryType) string {
	shape, ok := answerShapes[queryType]
	if !ok {
		shape = answerShapes[core.QueryTypeFactual]
	}
	return fmt.Sprintf(synthesisPromptTemplate, answerResponseSchema, shape)
}

// buildUserPrompt renders the question and all evidence into the user
// message. Sources and claims are numbered so the model can refer to them.
func buildUserPrompt(query string, sources []core.RetrievedSection, claims []core.SupportingClaim, conflicts []core.ResolvedConflict) string {
	var b strings.Builder

	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\n\nSources:\n")
	if len(sources) == 0 {
		b.WriteString("(none)\n")
	}
	for i, source := range sources {
		fmt.Fprintf(&b, "[S%d] (authority %d", i+1, source.AuthorityLevel)
		if source.Deprecated {
			b.WriteString(", DEPRECATED")
		}
		fmt.Fprintf(&b, ") %s\n", source.Excerpt)
	}

	b.WriteString("\nClaims:\n")
	if len(claims) == 0 {
		b.WriteString("(none)\n")
	}
	for i, claim := range claims {
		fmt.Fprintf(&b, "[C%d] (confidence %.2f", i+1, claim.Confidence)
		if claim.Verified != nil && !*claim.Verified {
			b.WriteString(", unverified")
		}
		fmt.Fprintf(&b, ") %s\n", claim.Text)
	}

	if len(conflicts) > 0 {
		b.WriteString("\nKnown conflicts:\n")
		for _, conflict := range conflicts {
			fmt.Fprintf(&b, "- %s: %q (confidence %.2f) vs %q (confidence %.2f)\n",
				conflict.ConflictType,
				conflict.ClaimA.Text, conflict.ClaimA.Confidence,
				conflict.ClaimB.Text, conflict.ClaimB.Confidence)
		}
	}

	return b.String()
}
