package command

// helpText is the user guide shown by the help command and when the client
// is run without input.
const helpText = `Reade is a Readwise API client for your terminal.

Actions are keywords that trigger content operations:

  add TEXT         Create a new highlight in Readwise with the entered TEXT
                   and return its URL (TEXT comes from the clipboard if not
                   entered inline).
  save URL [TAGS]  Save a URL to Reader. Any words after the URL
                   (comma-delimited) are added as tags, e.g. "tag one, tag two".
                   Run "save" alone to use the URL or article content on the
                   clipboard.
  list [CATEGORY] [LOCATION] [TAG...]
                   List recent Reader items, optionally filtered by CATEGORY
                   and/or LOCATION (in either order) and tags.

  CATEGORY: article, email, epub, highlight, note, pdf, rss, tweet, video.
  LOCATION: new, later, shortlist, archive, feed.

  For example, to list unread RSS items: "list new rss".

Key bindings in the item list:

  enter   Open the item in Reader.
  o       Open the source URL in your browser.
  y       Copy the source URL.
  space   Preview the item (cached HTML render when the source
          URL is not accessible).
  q, esc  Close the list.

Commands manage settings:

  help                     Display this user guide.
  config                   Show current configuration settings.
  config list              Same as "config".
  config reset             Reset all options to default (the API token is kept).
  config set OPTION VALUE  Set OPTION to VALUE, e.g. "config set timeout 20".
  version                  Show the version and check for a newer release.
`

// apiKeyHelp is shown when an action is requested without a stored token.
const apiKeyHelp = `Reade requires a Readwise API token.

1. Create a Readwise account at https://readwise.io/
2. Get an API token at https://readwise.io/access_token
3. Save the token with:

   config set token ××××××××××××××××××××

The READWISE_TOKEN environment variable is also honored.
`
