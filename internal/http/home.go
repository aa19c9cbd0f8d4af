package http

import "net/http"

// Home serves a minimal landing page with one login button per provider,
// used to exercise the gateway manually.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(homeHTML))
}

const homeHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>OAuth Test Page</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
        }
        .container {
            background: white;
            padding: 2rem;
            border-radius: 12px;
            box-shadow: 0 10px 30px rgba(0, 0, 0, 0.2);
            text-align: center;
            max-width: 400px;
            width: 90%;
        }
        h1 { color: #333; margin-bottom: 1.5rem; font-size: 1.8rem; }
        .oauth-buttons {
            display: flex;
            flex-direction: column;
            gap: 1rem;
            margin-top: 1.5rem;
        }
        .oauth-button {
            padding: 12px 24px;
            border-radius: 6px;
            font-size: 16px;
            font-weight: 500;
            cursor: pointer;
            text-decoration: none;
            border: none;
            color: white;
        }
        .google-button { background: #4285f4; }
        .github-button { background: #24292e; }
        .twitter-button { background: #1da1f2; }
        .discord-button { background: #5865f2; }
        .spotify-button { background: #1ed760; }
    </style>
</head>
<body>
    <div class="container">
        <h1>OAuth Test</h1>
        <p>Test your OAuth 2.0 implementation</p>
        <div class="oauth-buttons">
            <a href="/oauth/authorize?provider=google" class="oauth-button google-button">Sign in with Google</a>
            <a href="/oauth/authorize?provider=github" class="oauth-button github-button">Sign in with GitHub</a>
            <a href="/oauth/authorize?provider=twitter" class="oauth-button twitter-button">Sign in with Twitter</a>
            <a href="/oauth/authorize?provider=discord" class="oauth-button discord-button">Sign in with Discord</a>
            <a href="/oauth/authorize?provider=spotify" class="oauth-button spotify-button">Sign in with Spotify</a>
        </div>
    </div>
</body>
</html>
`
