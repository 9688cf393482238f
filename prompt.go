package biomark

import "strings"

// promptInstructions is the fixed instruction block placed before the
// article text.
const promptInstructions = `
RAG Prompt for Biomarker Data Extraction
Context:
You are an advanced AI system designed to analyze and extract specific information about protein biomarkers from research articles. You will process scientific content and extract details from research articles, including abstracts, figures, tables, and main body text. The data should be complete, accurate, and structured for database storage. Use the provided context to understand the task requirements.

Task:
Extract and organize the following information from the entire research article:
Biomarker Information:
Protein Name(s): Extract protein biomarkers mentioned in the document.
UniProt ID: Retrieve the UniProt ID(s) for the identified proteins.
Protein Sequence: Retrieve the full protein sequence from UniProt.
Isoforms: Record any specific isoforms mentioned (e.g., shorter, longer, or variants), along with their sequences.
Study and Source Information:
Disease Name(s): Identify the disease(s) the biomarker is associated with.
Source Material: Extract the biological source of the biomarker (e.g., serum, blood, saliva, urine, amniotic fluid, cerebrospinal fluid, etc.).
Organism: Always verify the organism as Homo sapiens (humans).
Technique Used: Extract the technique used to identify the biomarker (e.g., MS/MS or other analytical methods).
PubMed ID (PMID): Record the unique PubMed ID of the article.
Additional Information:
Alternative Protein Names: Retrieve alternative names or aliases for the protein(s) from UniProt.
Verification: Ensure that the identified biomarkers refer to proteins (not genes).
Validation and Special Cases:
Isoform Implication: If an isoform of a protein is specifically implicated in a disease, record its details separately, including sequence and disease association.
Accurate Categorization: Ensure the information aligns with proteins and not other biological molecules.
Output Format:
Return the information in JSON format for easy storage and processing. Ensure all fields are present even if the value is null.

Full Text of the Article:
`

// BuildPrompt renders the extraction instructions followed by the verbatim
// article text. The text is never truncated.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.Grow(len(promptInstructions) + len(text) + 1)
	sb.WriteString(promptInstructions)
	sb.WriteString(text)
	sb.WriteString("\n")
	return sb.String()
}
