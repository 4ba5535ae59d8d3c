// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ExecutableNotResolvedId Id = iota + 1
	ProjectRootNotFoundId
	ToolNotFoundId
	EnvCreationFailedId
	DependencySyncFailedId
	InterpreterMissingId
	EntryLaunchFailedId
	EntryExitedWithErrorId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
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

// Render renders the issue's Markdown with the given glamour style
// ("auto", "dark", "light", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	uvDocs = HttpLink("https://docs.astral.sh/uv/")

	executableNotResolvedIssue = &Issue{
		id: ExecutableNotResolvedId,
		mdMsg: `
# Could not resolve the launcher's own location!

The launcher finds your project by looking at the directory it was started
from, but the operating system did not report a usable executable path.

## Things you can try:
- Start the launcher through a regular file path rather than a pipe or a
  deleted file
- If the launcher is a symlink, check that the link target still exists`,
	}

	projectRootNotFoundIssue = &Issue{
		id: ProjectRootNotFoundId,
		mdMsg: `
# Project root not found!

No directory near the launcher contains the entry script.

## Search rules:
1. Start in the directory that contains the launcher executable
2. Look for ` + "`main.py`" + ` or ` + "`game/main.py`" + ` there
3. Move one directory up and repeat, up to the configured depth (8 by default)

## Things you can try:
- Place the launcher inside the project directory or one of its subdirectories
- Change the entry names in the config file:
~~~cue
entry: {
	script: "main.py"
	subdir: "game"
}
~~~
- Raise ` + "`search.max_depth`" + ` if the launcher lives deeper in the tree`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Package manager not found!

The launcher uses ` + "`uv`" + ` to create the virtual environment and install
dependencies, but it could not be started.

## Things you can try:
- Install uv:
~~~
$ curl -LsSf https://astral.sh/uv/install.sh | sh
~~~
- Make sure the directory containing uv is on your PATH
- Point the launcher at a specific binary:
~~~cue
tool: "/opt/uv/bin/uv"
~~~`,
		docLinks: []HttpLink{uvDocs},
	}

	envCreationFailedIssue = &Issue{
		id: EnvCreationFailedId,
		mdMsg: `
# Failed to create the virtual environment!

` + "`uv venv`" + ` exited with an error.

## Things you can try:
- Run the command yourself in the project directory to see the full output:
~~~
$ uv venv .venv
~~~
- Check that a suitable Python version is available to uv
- Check free disk space and write permissions on the project directory`,
		docLinks: []HttpLink{uvDocs},
	}

	dependencySyncFailedIssue = &Issue{
		id: DependencySyncFailedId,
		mdMsg: `
# Failed to synchronize dependencies!

` + "`uv sync`" + ` exited with an error, so the environment may be incomplete.

## Common causes:
- No ` + "`pyproject.toml`" + ` in the project directory
- A dependency cannot be resolved for your platform
- No network access while packages still need downloading

## Things you can try:
- Run ` + "`uv sync`" + ` in the project directory to see the full output
- Delete ` + "`.venv`" + ` and start the launcher again`,
		docLinks: []HttpLink{uvDocs},
	}

	interpreterMissingIssue = &Issue{
		id: InterpreterMissingId,
		mdMsg: `
# Python interpreter missing from the virtual environment!

The environment directory exists but does not contain an interpreter at the
expected location (` + "`bin/python`" + `, or ` + "`Scripts\\python.exe`" + ` on Windows).

## Things you can try:
- Delete the ` + "`.venv`" + ` directory and start the launcher again so it is recreated
- Check that ` + "`.venv`" + ` was not created for a different operating system`,
	}

	entryLaunchFailedIssue = &Issue{
		id: EntryLaunchFailedId,
		mdMsg: `
# Failed to start the application!

The interpreter was found but could not be executed.

## Things you can try:
- Check that the interpreter file is executable
- Recreate the environment by deleting ` + "`.venv`" + ``,
	}

	entryExitedWithErrorIssue = &Issue{
		id: EntryExitedWithErrorId,
		mdMsg: `
# The application exited with an error!

The launcher started the application successfully, but it reported a failure
when it finished. Its own output above usually explains why.

## Things you can try:
- Scroll up for the application's error output
- Run it by hand from the project directory to reproduce:
~~~
$ .venv/bin/python main.py
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Check the CUE syntax of the file named in the error
- Print the defaults as a starting point:
~~~
$ pylaunch config dump
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Things you can try:
- Check permissions on the project directory and on ` + "`.venv`" + `
- Run the launcher from a location you own`,
	}

	issues = map[Id]*Issue{
		executableNotResolvedIssue.Id(): executableNotResolvedIssue,
		projectRootNotFoundIssue.Id():   projectRootNotFoundIssue,
		toolNotFoundIssue.Id():          toolNotFoundIssue,
		envCreationFailedIssue.Id():     envCreationFailedIssue,
		dependencySyncFailedIssue.Id():  dependencySyncFailedIssue,
		interpreterMissingIssue.Id():    interpreterMissingIssue,
		entryLaunchFailedIssue.Id():     entryLaunchFailedIssue,
		entryExitedWithErrorIssue.Id():  entryExitedWithErrorIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
