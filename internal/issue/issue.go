// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	NoValidInputId Id = iota + 1
	MalformedDocumentId
	RuleFileRejectedId
	ValidationFailedId
	OutputWriteFailedId
	ConfigLoadFailedId
	ChooserUnavailableId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	noValidInputIssue = &Issue{
		id: NoValidInputId,
		mdMsg: `
# No valid input documents!

None of the input files could be parsed, so there is nothing to merge.

## Things you can try:
- Check the file paths for typos
- Validate each file on its own:
~~~
$ arxmlmerge validate broken.arxml
~~~

- Make sure every file is an ARXML document with an AUTOSAR root element:
~~~xml
<?xml version="1.0" encoding="UTF-8"?>
<AUTOSAR xmlns="http://autosar.org/schema/r4.0">
  <AR-PACKAGES>
    ...
  </AR-PACKAGES>
</AUTOSAR>
~~~`,
	}

	malformedDocumentIssue = &Issue{
		id: MalformedDocumentId,
		mdMsg: `
# Malformed ARXML document!

The file is not well-formed XML, or its root element is not AUTOSAR.

## Common causes:
- Unclosed or misnested elements
- A second element after the document root
- An export that was truncated mid-write
- A file that is not ARXML at all (DBC, FIBEX, plain XML)

## Things you can try:
- Re-export the file from the authoring tool
- Run with verbose mode to see where parsing stopped:
~~~
$ arxmlmerge --verbose merge a.arxml b.arxml
~~~`,
	}

	ruleFileRejectedIssue = &Issue{
		id: RuleFileRejectedId,
		mdMsg: `
# Rule file rejected!

The rule file contains a rule the engine does not understand, so the whole
file was rejected and the built-in rules stay in effect.

## Valid conflict types:
duplicate_element, different_attributes, different_content,
incompatible_types, reference_conflict, version_mismatch

## Valid resolution strategies:
keep_first, keep_last, merge_attributes, merge_content,
user_choice, rule_based, skip

## Example rule file:
~~~jsonc
{
  // project overrides ship next to the extracts
  "rules": [
    {
      "element_type": "I-SIGNAL",
      "conflict_type": "duplicate_element",
      "resolution_strategy": "keep_last",
      "priority": 20
    }
  ]
}
~~~`,
	}

	validationFailedIssue = &Issue{
		id: ValidationFailedId,
		mdMsg: `
# Validation failed!

The document violates ARXML structural rules.

## Checks performed:
- The root element is AUTOSAR with an AR-PACKAGES container
- Every package and element carries a well-formed SHORT-NAME
- No two siblings in the same scope share a (kind, name) pair
- Cross-references point at elements that exist

## Things you can try:
- Read the issue list above; every finding carries the path of the
  offending element
- Lower the depth to isolate the failing layer:
~~~
$ arxmlmerge validate --depth basic system.arxml
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write output!

The merged document or a report file could not be written.

## Common causes:
- The output directory does not exist
- Permission denied on the target path
- The disk is full

## Things you can try:
- Create the directory first:
~~~
$ mkdir -p reports && arxmlmerge merge --report-dir reports a.arxml b.arxml
~~~

- Write somewhere you own:
~~~
$ arxmlmerge merge -o /tmp/merged.arxml a.arxml b.arxml
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the arxmlmerge configuration file.

## Configuration file locations:
- Linux: ~/.config/arxmlmerge/config.yaml
- macOS: ~/Library/Application Support/arxmlmerge/config.yaml
- Windows: %APPDATA%\arxmlmerge\config.yaml

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~yaml
strategy: conservative
validation_depth: structure
report:
  json: true
  html: false
~~~`,
	}

	chooserUnavailableIssue = &Issue{
		id: ChooserUnavailableId,
		mdMsg: `
# Interactive resolution unavailable!

A rule or the interactive strategy asked for a user decision, but there is
no terminal to ask on. The conflict was resolved by keeping the first
occurrence instead.

## Things you can try:
- Run from an interactive terminal
- Pick a non-interactive strategy:
~~~
$ arxmlmerge merge --strategy conservative a.arxml b.arxml
~~~

- Encode the decision as a rule so no prompt is needed:
~~~jsonc
{
  "rules": [
    {
      "element_type": "ECU-INSTANCE",
      "conflict_type": "duplicate_element",
      "resolution_strategy": "keep_last",
      "priority": 20
    }
  ]
}
~~~`,
	}

	issues = map[Id]*Issue{
		noValidInputIssue.Id():       noValidInputIssue,
		malformedDocumentIssue.Id():  malformedDocumentIssue,
		ruleFileRejectedIssue.Id():   ruleFileRejectedIssue,
		validationFailedIssue.Id():   validationFailedIssue,
		outputWriteFailedIssue.Id():  outputWriteFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		chooserUnavailableIssue.Id(): chooserUnavailableIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
