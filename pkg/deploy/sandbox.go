package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	sandboxDefineURL = "https://codesandbox.io/api/v1/sandboxes/define"
	sandboxTimeout   = 60 * time.Second
)

// SandboxDeployer packages a React project and hands it to the
// CodeSandbox define API. Needs no credentials.
type SandboxDeployer struct {
	apiURL     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewSandboxDeployer(log *zap.Logger) *SandboxDeployer {
	return &SandboxDeployer{
		apiURL:     sandboxDefineURL,
		httpClient: &http.Client{Timeout: sandboxTimeout},
		log:        log,
	}
}

func (d *SandboxDeployer) Name() string { return "sandbox" }

type sandboxFile struct {
	Content string `json:"content"`
}

type defineRequest struct {
	JSON  int                    `json:"json"`
	Files map[string]sandboxFile `json:"files"`
}

type defineResponse struct {
	SandboxID string `json:"sandbox_id"`
}

// Deploy posts the project files to the define API and derives the
// editor and live-preview URLs from the returned sandbox id.
func (d *SandboxDeployer) Deploy(ctx context.Context, site Site) (*Result, error) {
	files := site.Files
	if len(files) == 0 {
		return nil, fmt.Errorf("sandbox deploy: no files")
	}
	if _, ok := files["package.json"]; !ok {
		files = copyWithPackageJSON(files, site.Title)
	}

	req := defineRequest{JSON: 1, Files: make(map[string]sandboxFile, len(files))}
	for path, content := range files {
		req.Files[path] = sandboxFile{Content: content}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("sandbox deploy: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sandbox deploy: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("sandbox deploy: status %d: %s", resp.StatusCode, capOutput(string(body)))
	}

	var def defineResponse
	if err := json.Unmarshal(body, &def); err != nil || def.SandboxID == "" {
		return nil, fmt.Errorf("sandbox deploy: no sandbox id in response")
	}

	d.log.Info("sandbox created", zap.String("sandbox_id", def.SandboxID))

	return &Result{
		URL:       fmt.Sprintf("https://%s.csb.app", def.SandboxID),
		EditorURL: fmt.Sprintf("https://codesandbox.io/s/%s", def.SandboxID),
		ID:        def.SandboxID,
	}, nil
}

func copyWithPackageJSON(files map[string]string, title string) map[string]string {
	out := make(map[string]string, len(files)+1)
	for k, v := range files {
		out[k] = v
	}
	out["package.json"] = packageJSON(title)
	return out
}

func packageJSON(title string) string {
	name := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	if name == "" {
		name = "landing-page"
	}
	pkg := map[string]any{
		"name":    name,
		"private": true,
		"scripts": map[string]string{
			"dev":   "next dev",
			"build": "next build",
			"start": "next start",
		},
		"dependencies": map[string]string{
			"next":         "14.0.0",
			"react":        "18.2.0",
			"react-dom":    "18.2.0",
			"tailwindcss":  "3.3.0",
			"autoprefixer": "10.4.16",
			"postcss":      "8.4.31",
			"lucide-react": "^0.294.0",
		},
	}
	data, _ := json.MarshalIndent(pkg, "", "  ")
	return string(data)
}

// BuildNextProject wraps a single React component into a complete
// Next.js project file map ready for the define API.
func BuildNextProject(componentCode, title string) map[string]string {
	return map[string]string{
		"pages/index.js": `import LandingPage from '../components/LandingPage'

export default function Home() {
  return <LandingPage />
}
`,
		"components/LandingPage.jsx": componentCode,
		"pages/_app.js": `import '../styles/globals.css'

export default function App({ Component, pageProps }) {
  return <Component {...pageProps} />
}
`,
		"styles/globals.css": `@tailwind base;
@tailwind components;
@tailwind utilities;

* {
  font-family: 'Inter', system-ui, sans-serif;
}
`,
		"tailwind.config.js": `/** @type {import('tailwindcss').Config} */
module.exports = {
  content: [
    './pages/**/*.{js,jsx}',
    './components/**/*.{js,jsx}',
  ],
  theme: {
    extend: {
      colors: {
        primary: {
          50: '#eff6ff',
          100: '#dbeafe',
          200: '#bfdbfe',
          300: '#93c5fd',
          400: '#60a5fa',
          500: '#3b82f6',
          600: '#2563eb',
          700: '#1d4ed8',
          800: '#1e40af',
          900: '#1e3a8a',
        }
      }
    }
  },
  plugins: []
}
`,
		"postcss.config.js": `module.exports = {
  plugins: {
    tailwindcss: {},
    autoprefixer: {},
  },
}
`,
		"next.config.js": `/** @type {import('next').NextConfig} */
const nextConfig = {
  reactStrictMode: true,
}
module.exports = nextConfig
`,
		"package.json": packageJSON(title),
	}
}
