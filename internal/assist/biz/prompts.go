package biz

import (
	"fmt"
	"strings"
)

const (
	summarizeSample = 10
	explainSample   = 5
)

func enhancePrompt(query string) string {
	return fmt.Sprintf(`You are an expert in Australian historical research and the Trove digital archive system.
Your job is to enhance search queries to find the most relevant historical documents.

Original query: %q

Please enhance this query by:
1. Adding relevant historical context and synonyms
2. Including important dates, places, and people related to the topic
3. Adding terms that historians would use
4. Including alternative spellings and historical terminology
5. Keep it concise but comprehensive for Trove search

Enhanced query should be optimized for finding Australian historical records, newspapers, government documents, and archives.

Return only the enhanced query terms, separated by spaces. No explanations.

Examples:
- "eureka" -> "Eureka Stockade 1854 Ballarat gold miners rebellion Peter Lalor colonial government democratic reform"
- "bushrangers" -> "bushrangers outlaws Ned Kelly Dan Morgan Ben Hall colonial police New South Wales Victoria"
- "federation" -> "Australian Federation 1901 Commonwealth Constitution colonies union Henry Parkes Edmund Barton"

Enhanced query:`, query)
}

func summarizePrompt(results []ResultInput) string {
	var sb strings.Builder
	for i, r := range results {
		if i == summarizeSample {
			break
		}
		fmt.Fprintf(&sb, "%d. Title: %s\nDate: %s\nSource: %s\nSnippet: %s\n\n",
			i+1,
			orDefault(r.Title, "Untitled"),
			orDefault(r.Date, "Unknown date"),
			orDefault(r.Source, "Unknown source"),
			orDefault(firstOf(r.Snippet, r.Text), "No content available"),
		)
	}

	return fmt.Sprintf(`You are an expert Australian historian analyzing search results from the Trove digital archive.

Please analyze these search results and provide:
1. A brief 2-3 sentence summary of what these documents are about
2. Key historical themes and topics covered
3. Important dates, people, and places mentioned
4. Historical significance and context

Search Results:
%s
Please provide a concise but informative summary that helps users understand the historical significance of these documents.

Format your response as:
SUMMARY: [2-3 sentence overview]
KEY THEMES: [main historical themes]
IMPORTANT DETAILS: [key dates, people, places]
HISTORICAL SIGNIFICANCE: [why this matters in Australian history]`, sb.String())
}

func categorizePrompt(results []ResultInput) string {
	var sb strings.Builder
	for i, r := range results {
		if i == summarizeSample {
			break
		}
		fmt.Fprintf(&sb, "%s - %s\n",
			orDefault(r.Title, "Untitled"),
			firstOf(r.Snippet, r.Text),
		)
	}

	return fmt.Sprintf(`You are categorizing Australian historical documents from Trove.
Analyze these search results and organize them into relevant categories.

Common Australian history categories include:
- Colonial Period (1788-1901)
- Federation & Early Commonwealth (1901-1920s)
- Gold Rush Era (1850s-1860s)
- Indigenous History & Culture
- Military History (Wars, ANZAC, etc.)
- Social History (Immigration, Women, Labor)
- Political History (Government, Laws, Elections)
- Economic History (Trade, Industry, Agriculture)
- Cultural History (Arts, Literature, Religion)
- Legal History (Courts, Crime, Justice)
- Regional History (State-specific events)
- Biographical (Notable People)

Search Results:
%s
Return a JSON array of categories with counts:
[
  {"category": "Category Name", "count": number, "description": "brief description"},
  ...
]

Only include categories that actually appear in the results. Maximum 8 categories.`, sb.String())
}

func explainTermsPrompt(results []ResultInput) string {
	var sb strings.Builder
	for i, r := range results {
		if i == explainSample {
			break
		}
		sb.WriteString(firstOf(r.Snippet, r.Text, r.Title))
		sb.WriteString(" ")
	}

	return fmt.Sprintf(`You are an expert in Australian historical terminology and 19th-20th century language.
Analyze this text from historical Australian documents and identify:

1. Archaic or historical terms that modern readers might not understand
2. Colonial-era terminology and its modern equivalents
3. Historical context for specific phrases
4. Currency, measurements, or legal terms that have changed

Historical Text:
%s

Return explanations in this format:
HISTORICAL TERM: "original term"
MODERN MEANING: explanation in simple modern language
HISTORICAL CONTEXT: why this term was used in that period

Focus on terms that would genuinely help modern users understand historical documents.
Only include terms that actually appear in the provided text.
Maximum 8 explanations.`, strings.TrimSpace(sb.String()))
}

func suggestPrompt(partial string) string {
	return fmt.Sprintf(`You are an expert in Australian history and the Trove digital archive.
A user is typing: %q

Suggest 3-5 specific, historically accurate search queries that would find interesting documents in Trove.
Focus on:
- Australian historical events, people, and places
- Specific dates and periods that would yield good results
- Terms that historians and researchers would use
- Combinations that would find primary sources

Return only the suggested search queries, one per line. No explanations.
Each suggestion should be a complete, searchable phrase.

Examples for "gold":
Gold rush Victoria 1850s Ballarat
Gold license fees miners protests
Gold discovery Edward Hargraves 1851

Suggestions for %q:`, partial, partial)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
