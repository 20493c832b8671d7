package descriptions

import (
	"sort"
	"strings"
)

// Tool names exposed over MCP
const (
	ClassifyFileTool    = "disclosure_classify_file"
	LocateMarkerTool    = "disclosure_locate_marker"
	DecideFileTool      = "disclosure_decide_file"
	ExtractTextTool     = "disclosure_extract_text"
	DesensitizeFileTool = "disclosure_desensitize_file"
	ServerInfoTool      = "disclosure_server_info"
)

const (
	ClassifyFileDescription = `Report whether a PDF is a technology disclosure form.

**When to use:** Sorting a mixed folder of PDFs before desensitizing or extracting.

**How it works:** Only the first page is read. The form matches when one line carries "technology", "disclosure" and "form", or failing that when the page as a whole carries all of them.

**Examples:**
• "Is /data/in/2024/inv-0142.pdf a disclosure form?"
• Classify every file returned by disclosure_server_info before running disclosure_desensitize_file.`

	LocateMarkerDescription = `Find where a marker first appears in a PDF and which matching tier found it.

**When to use:** Checking why a document was cut where it was, or testing a custom marker.

**How it works:** Tiers run from strict to lenient: exact line, fuzzy line, structural pattern, full-text window, keyword count, positional fallback. The first tier with a hit wins and reports its earliest page.

**Parameters:** marker defaults to "signature"; "section" looks for the supporting-documents header.`

	DecideFileDescription = `Decide how many leading pages of a PDF to keep.

**When to use:** Previewing a desensitize run without writing anything.

**How it works:** A located marker cuts the document at its page. Without one, short documents with a title keep most pages, and everything else keeps a default share of pages.

**Response:** tier, reason (MARKER_FOUND, TITLE_HEURISTIC_SHORT, TITLE_HEURISTIC_LONG or DEFAULT_FALLBACK) and pages kept.`

	ExtractTextDescription = `Extract the text that precedes the cut line.

**When to use:** Building a clean text corpus from disclosure forms.

**How it works:** The decision is the same as disclosure_decide_file with marker "section" by default. Pages before the cut are joined; in line mode the anchor page is kept up to the marker line. The text is written under the text directory, or to output when given.

**Skips:** empty kept text, and unmatched documents when the server requires a marker.`

	DesensitizeFileDescription = `Write a copy of a PDF truncated before the signature block.

**When to use:** Preparing disclosure forms for sharing downstream.

**How it works:** Pages before the cut are written unchanged. When no page would be kept, a single placeholder page is written instead of an empty PDF. The output mirrors the input path under the output directory unless output is given.`

	ServerInfoDescription = `Get server configuration, markers, input directory contents and available tools.

**When to use:** Starting a session, or checking which files and markers are available.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	ClassifyFileTool:    ClassifyFileDescription,
	LocateMarkerTool:    LocateMarkerDescription,
	DecideFileTool:      DecideFileDescription,
	ExtractTextTool:     ExtractTextDescription,
	DesensitizeFileTool: DesensitizeFileDescription,
	ServerInfoTool:      ServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// Summary returns the first line of a tool description
func Summary(toolName string) string {
	desc := GetToolDescription(toolName)
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		return desc[:i]
	}
	return desc
}

// GetAllToolNames returns the tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
