package server

// Minimal pages for the browser-facing flow. The data endpoints speak
// JSON; these exist so the login, registration and linking steps work
// without a separate frontend.

const loginPage = `<!doctype html>
<title>Log in</title>
<h1>Log in</h1>
<form method="post">
  <input name="username" placeholder="username" autocomplete="username">
  <input name="password" type="password" placeholder="password" autocomplete="current-password">
  <button type="submit">Log in</button>
</form>
<p><a href="/register">Create an account</a></p>
`

const registerPage = `<!doctype html>
<title>Register</title>
<h1>Create an account</h1>
<form method="post">
  <input name="username" placeholder="username" autocomplete="username">
  <input name="password" type="password" placeholder="password" autocomplete="new-password">
  <button type="submit">Register</button>
</form>
`

const connectPage = `<!doctype html>
<title>Connect Google Sheets</title>
<h1>Connect your Google account</h1>
<p><a href="%s">Authorize access to Google Sheets</a></p>
`

const sheetPage = `<!doctype html>
<title>Link spreadsheet</title>
<h1>Link your spreadsheet</h1>
<p>Duplicate the template to your own Google Drive, then paste its URL.</p>
<form method="post">
  <input name="link" placeholder="https://docs.google.com/spreadsheets/d/.../edit" size="80">
  <button type="submit">Link</button>
</form>
`
