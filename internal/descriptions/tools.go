package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Scan Tools
	PDFScanWordsDescription = `Extract word-level text with font metadata and positions from PDF forms.

**When to use:** Need the exact words on a page with their bounding boxes, font names, and sizes for layout-aware analysis.

**Why it's useful:** Groups raw glyphs into words while preserving the typographic detail that plain text extraction throws away, so downstream tools can reason about labels, captions, and field text spatially.

**Examples:**
• Field labeling: "Scan f1040.pdf to map which words sit next to each input box"
• Font auditing: "List every word on page 1 of w9.pdf with its font and size"
• Text indexing: "Dump all words from schedule-a.pdf with coordinates for search"

**Common workflows:**
1. Form Mapping: Scan words → Match labels to nearby fields → Build a field dictionary
2. Typography Review: Scan words → Group by font and size → Spot headings and fine print
3. Spatial Search: Scan words → Index by position → Answer "what text is near this box"

**Best practices:** Coordinates are in points with the origin at the top-left of each page, combine with pdf_scan_layout for visual structure.`

	PDFScanLayoutDescription = `Detect lines, background colors, checkboxes, and vector shapes on rendered PDF pages.

**When to use:** Need the visual structure of a form: rules and separators, shaded regions, checkbox positions, and drawn shapes.

**Why it's useful:** Finds structure that exists only as graphics, not text: the boxes people write in, the lines that divide sections, and the shading that groups fields.

**Examples:**
• Checkbox inventory: "Find every checkbox on f1040.pdf with its position"
• Section detection: "Detect the horizontal rules that divide w4.pdf into sections"
• Shading analysis: "List the shaded background regions on schedule-b.pdf"

**Common workflows:**
1. Form Structure: Scan layout → Combine lines and shading → Reconstruct the form grid
2. Checkbox Mapping: Scan layout → Pair checkboxes with nearby words → Build answer keys
3. Template Comparison: Scan layout across revisions → Diff detected elements → Flag changes

**Best practices:** Scans the first pages up to the configured cap unless a page is requested, raise the rendering resolution for small checkboxes, positions are in points.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to scan or process any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted files early, and ensures compatibility with the scanning tools.

**Examples:**
• Batch processing safety: "Validate all PDFs in /forms/ before bulk scanning"
• Upload verification: "Check user-uploaded return.pdf is valid before processing"
• Quality control: "Verify exported-form.pdf is readable before archiving"

**Common workflows:**
1. Automated Processing: Validate → Scan if valid → Handle errors gracefully
2. File Quality Check: Validate → Report issues → Fix or reject bad files
3. Pre-processing Pipeline: Validate → Route to appropriate scan method

**Best practices:** Always run this first in automated workflows, essential for production systems handling unknown PDFs.`

	PDFStatsFileDescription = `Get comprehensive metadata and statistics about PDF documents.

**When to use:** Need document properties, page count, file size, creation info, or to understand a document before scanning it.

**Why it's useful:** Provides essential metadata for document management, helps choose scanning strategies, and offers insights into document origin.

**Examples:**
• Document management: "Get creation date and producer from f1040.pdf for filing"
• Processing decisions: "Check page count of instructions.pdf to estimate scan time"
• Audit trail: "Get metadata from signed-return.pdf for compliance records"

**Common workflows:**
1. Document Cataloging: Get stats → Store metadata → Index for search
2. Processing Planning: Check stats → Choose scan settings → Allocate resources
3. Compliance & Audit: Extract metadata → Verify properties → Log for records

**Best practices:** Useful for document management systems, helps estimate processing requirements for large files.`

	// Search and Discovery Tools
	PDFSearchDirectoryDescription = `Discover and filter PDF files across directories with intelligent search.

**When to use:** Need to find specific PDFs by name patterns, explore unknown directories, or build file inventories.

**Why it's useful:** Quickly locates relevant documents without manual browsing, supports fuzzy matching for partial names.

**Examples:**
• Find forms: "Search /forms/ for files containing '1040' or 'schedule'"
• Locate returns: "Find all PDF files with '2024' in /returns/ directory"
• Inventory building: "List all PDFs in /archive/ to understand content scope"

**Common workflows:**
1. Targeted Processing: Search for specific patterns → Scan matching files → Generate reports
2. Content Discovery: Explore directory → Identify document types → Plan scan strategy
3. Batch Operations: Find files → Validate each → Scan in sequence

**Best practices:** Use fuzzy search for partial matches, combine with pdf_stats_directory for a comprehensive overview.`

	PDFStatsDirectoryDescription = `Analyze PDF collections and get comprehensive directory statistics.

**When to use:** Need an overview of PDF collection size, total file count, storage usage, or to assess processing requirements.

**Why it's useful:** Provides high-level insights for capacity planning, identifies largest files, and helps prioritize processing efforts.

**Examples:**
• Capacity planning: "Analyze /archive/ to understand storage usage and processing load"
• Collection overview: "Get statistics on /forms/ to plan a scanning run"
• Resource allocation: "Check /returns/ stats to estimate batch processing time"

**Common workflows:**
1. Migration Planning: Get directory stats → Estimate resources → Plan phases
2. Storage Management: Analyze usage → Identify large files → Optimize storage
3. Processing Strategy: Review collection → Plan batch sizes → Allocate processing time

**Best practices:** Essential for understanding large document collections before bulk scanning operations.`

	// Utility Tools
	PDFServerInfoDescription = `Get real-time server status, available tools, and system capabilities.

**When to use:** Starting work with the scanning server, troubleshooting issues, or checking available functionality.

**Why it's useful:** Provides a complete overview of server capabilities, current configuration, and directory contents for informed decision-making.

**Examples:**
• System check: "Verify the server is ready and all tools are available before batch scanning"
• Troubleshooting: "Check server info to diagnose why files aren't being found"
• Capability discovery: "See all available tools and their descriptions for new projects"

**Common workflows:**
1. Session Startup: Check server info → Verify capabilities → Plan scanning approach
2. Debugging: Review server status → Check directory paths → Verify tool availability
3. Planning: Review available tools → Choose appropriate methods → Execute workflow

**Best practices:** Run at the start of sessions, provides cached directory contents for a quick overview.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"pdf_scan_words":       PDFScanWordsDescription,
	"pdf_scan_layout":      PDFScanLayoutDescription,
	"pdf_validate_file":    PDFValidateFileDescription,
	"pdf_stats_file":       PDFStatsFileDescription,
	"pdf_search_directory": PDFSearchDirectoryDescription,
	"pdf_stats_directory":  PDFStatsDirectoryDescription,
	"pdf_server_info":      PDFServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
