package research

import "strings"

// Prompt templates use {name} placeholders filled by fillPrompt.
// Braces inside JSON examples are left alone on purpose: templates are
// filled by plain replacement, never by a format string.

const planPrompt = `You are planning research for the question below. Break it into
focused sub-questions that can each be answered from web evidence.

Question: {question}
Prior conversation: {history}

Respond with a single JSON object:
{"sub_questions": [{"text": "...", "priority": 1, "tactics": ["..."], "query_variants": ["..."]}],
 "success_criteria": ["..."],
 "max_iterations": 2,
 "confidence_threshold": 0.65,
 "evidence_constraints": {"source_types": ["..."], "time_range": {"start_year": 0, "end_year": 0}}}

Keep sub-questions independent and ordered by priority (1 = first).
Omit any field you have no opinion on.`

const synthesisPrompt = `Synthesize an answer to the sub-question from the evidence below.
Only use what the evidence supports; say so when it is thin.

Sub-question: {sub_question}

Evidence:
{evidence}

Respond with a single JSON object:
{"claim": "one or two sentence assertion",
 "uncertainty": "what remains unclear, empty string if nothing",
 "confidence": 0.0}

confidence is your degree of belief in the claim given only this evidence, in [0,1].`

const criticPrompt = `You are reviewing a draft research briefing. Identify sub-questions
whose claims need more or better evidence, and propose follow-up search
queries for them. If the evidence mix suggests tightening what sources
are acceptable, propose constraints.

Sub-questions: {sub_questions}
Overview: {overview}
Claims: {findings}
Uncertainties: {uncertainties}
Sources: {sources}
Active constraints: {constraints}

Respond with a single JSON object:
{"follow_up_queries": {"<sub-question text>": ["query", "..."]},
 "evidence_constraints": {"global": {"source_types": ["..."]},
                          "by_sub_question": {"<sub-question text>": {"source_types": ["..."]}}}}

Return {"follow_up_queries": {}} when the briefing needs no further work.`

const essayPrompt = `Write a cohesive essay answering the research question, grounded in
the findings below. Cite sources inline by their [number]. Acknowledge
uncertainty where the findings do. Do not invent sources.

Question: {question}

Findings:
{findings}

Numbered sources:
{sources}`

// fillPrompt replaces {key} placeholders with their values. Plain
// replacement keeps JSON braces in templates intact.
func fillPrompt(template string, vars map[string]string) string {
	filled := template
	for key, value := range vars {
		filled = strings.ReplaceAll(filled, "{"+key+"}", value)
	}
	return filled
}
