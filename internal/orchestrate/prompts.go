package orchestrate

import (
	"fmt"
	"strings"
)

// CompletionMarker is the fixed phrase the orchestrator role prefixes to its
// reply once it judges the objective fully satisfied.
const CompletionMarker = "The task is complete:"

// continuationPrompt is the standardized instruction used when a reply looks
// truncated and must be extended.
const continuationPrompt = "Continuing from the previous answer, please complete the response."

// FolderStructure marker tags wrapping the directory-tree JSON fragment in
// the refined output. The artifact parser looks for the same pair.
const (
	FolderStructureOpenTag  = "<folder_structure>"
	FolderStructureCloseTag = "</folder_structure>"
)

// orchestratorPrompt builds the request asking the orchestrator role for the
// next sub-task, or for the final output prefixed with the completion marker.
// Seed content is included only when the caller passes it (first iteration).
func orchestratorPrompt(objective, seed string, previousResults []string) string {
	previousText := "None"
	if len(previousResults) > 0 {
		previousText = strings.Join(previousResults, "\n")
	}

	var b strings.Builder
	b.WriteString("Based on the following objective")
	if seed != "" {
		b.WriteString(" and file content")
	}
	b.WriteString(", and the previous sub-task results (if any), please break down the objective into the next sub-task, " +
		"and create a concise and detailed prompt for a subagent so it can execute that task. " +
		"Focus solely on the objective and avoid engaging in casual conversation with the subagent.\n\n" +
		"When dealing with code tasks, make sure to check the code for errors and provide fixes and support as part of the next sub-task. " +
		"If you find any bugs or have suggestions for better code, please include them in the next sub-task prompt.\n\n" +
		"Please assess if the objective has been fully achieved. If the previous sub-task results comprehensively address all aspects of the objective, " +
		"include the phrase '" + CompletionMarker + "' at the beginning of your response. " +
		"If the objective is not yet fully achieved, break it down into the next sub-task and create a concise and detailed prompt for a subagent to execute that task.")

	fmt.Fprintf(&b, "\n\nObjective: %s", objective)
	if seed != "" {
		fmt.Fprintf(&b, "\nFile content:\n%s", seed)
	}
	fmt.Fprintf(&b, "\n\nPrevious sub-task results:\n%s", previousText)

	return b.String()
}

// refinePrompt builds the request asking the refiner role to merge all
// sub-task results into one cohesive artifact, emitting the project name,
// directory tree, and per-file code blocks when the objective is a coding one.
func refinePrompt(objective string, results []string) string {
	var b strings.Builder
	b.WriteString("Objective: ")
	b.WriteString(objective)
	b.WriteString("\n\nSub-task results:\n")
	b.WriteString(strings.Join(results, "\n"))
	b.WriteString("\n\nPlease review and refine the sub-task results into a cohesive final output. " +
		"Add any missing information or details as needed.\n\n" +
		"When working on code projects, ONLY AND ONLY IF THE PROJECT IS CLEARLY A CODING ONE, please provide the following:\n\n" +
		"1. Project Name: Create a concise and appropriate project name that fits the project based on what it's creating. " +
		"The project name should be no more than 20 characters long.\n\n" +
		"2. Folder Structure: Provide the folder structure as a valid JSON object, where each key represents a folder or file, " +
		"and nested keys represent subfolders. Use null values for files. " +
		"Ensure the JSON is properly formatted without any syntax errors. " +
		"Please make sure all keys are enclosed in double quotes, and ensure objects are correctly encapsulated with braces, " +
		"separating items with commas as necessary. " +
		"Wrap the JSON object in " + FolderStructureOpenTag + " tags.\n\n" +
		"3. Code Files: For each code file, include ONLY the file name, NEVER EVER USE THE FILE PATH OR ANY OTHER FORMATTING. " +
		"YOU ONLY USE THE FOLLOWING format 'Filename: <filename>' followed by the code block enclosed in triple backticks, " +
		"with the language identifier after the opening backticks.\n\n" +
		"Focus solely on the objective and avoid engaging in casual conversation. " +
		"Ensure the final output is clear, concise, and addresses all aspects of the objective.")

	return b.String()
}
