package site

// layoutTemplate wraps every page. The <html> class is rendered already
// resolved so the inline pre-paint script only confirms it.
const layoutTemplate = `<!DOCTYPE html>
<html lang="fr" class="{{.Theme.Class}}" data-theme="{{.Theme.Theme}}" data-theme-cookie="{{.ThemeCookie}}" style="color-scheme: {{.Theme.ColorScheme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="theme-color" content="{{.Theme.MetaColor}}">
  {{block "head" .}}{{end}}
  <title>{{if .Title}}{{.Title}} | {{end}}{{.Brand}}</title>
  <script>{{.PrepaintJS}}</script>
  <style>{{.ThemeCSS}}</style>
  <link rel="icon" href="/static/favicon.svg?v={{.AssetVersion}}" type="image/svg+xml">
  <link rel="stylesheet" href="/static/style.css?v={{.AssetVersion}}">
</head>
<body data-view="{{.View}}" data-scroll="{{.Scroll}}" data-scroll-anchor="{{.ScrollAnchor}}">
  {{if .Nav}}
  <header class="top-bar">
    <a class="brand" href="/">{{.Brand}}</a>
    <nav>
      {{range .Nav}}<a href="{{.Path}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Title}}</a>{{end}}
    </nav>
    <button class="theme-toggle" id="theme-toggle" type="button" aria-label="Changer de thème">
      <span class="sun">&#9728;</span><span class="moon">&#9790;</span>
    </button>
  </header>
  {{end}}
  <main>
  {{template "content" .}}
  </main>
  <script src="/static/app.js?v={{.AssetVersion}}" defer></script>
</body>
</html>
`

const splashTemplate = `{{define "head"}}<meta http-equiv="refresh" content="2;url={{.Splash.Next}}">{{end}}
{{define "content"}}
<section class="splash">
  <h1>{{.Brand}}</h1>
  <p>{{.Splash.Tagline}}</p>
  <a class="button" href="{{.Splash.Next}}">Entrer</a>
</section>
{{end}}`

const homeTemplate = `{{define "content"}}
<section class="hero">
  <div>
    <h1>Bienvenue chez <span class="underline">{{.Home.Brand.Name}}</span></h1>
    <p>{{.Home.Brand.Tagline}}</p>
    <p class="actions">
      <a class="button" href="/menu">Voir le menu</a>
      <a class="button secondary" href="/restaurants">Nos restaurants</a>
    </p>
  </div>
  {{with .Home.Brand.HeroImage}}<img src="{{.}}" alt="Burger délicieux">{{end}}
</section>

<section class="specialties">
  <h2>Nos Spécialités</h2>
  <div class="grid">
  {{range .Home.Specialties}}
    <article class="card">
      <img src="{{.Image}}" alt="{{.Name}}" loading="lazy">
      <h3>{{.Name}}</h3>
      <p>{{.Description}}</p>
      <a href="{{.Link}}">Voir sur le menu</a>
    </article>
  {{end}}
  </div>
</section>

{{if .Home.News}}
<section class="news">
  <h2>Nos Actualités</h2>
  {{range .Home.News}}
  <article class="card news-item">
    {{with .Image}}<img src="{{.}}" alt="" loading="lazy">{{end}}
    <div>
      <time>{{.Date}}</time>
      <h3>{{.Title}}</h3>
      {{.HTML}}
      {{with .Link}}<a href="{{.}}">En savoir plus</a>{{end}}
    </div>
  </article>
  {{end}}
</section>
{{end}}
{{end}}`

const menuTemplate = `{{define "content"}}
<section class="menu">
  <h1>Notre Carte</h1>
  <nav class="categories">
    {{$active := .Menu.Active}}
    {{range .Menu.Categories}}<a href="/menu?category={{.}}"{{if eq . $active}} class="active"{{end}}>{{.}}</a>{{end}}
  </nav>
  {{.Menu.Items}}
</section>
{{end}}`

// menuItemsTemplate renders the active category on its own so the page can
// signal the render before attaching the scroll target.
const menuItemsTemplate = `{{define "menu-items"}}<div class="items" data-category="{{.Category}}" data-generation="{{.Generation}}">
{{range .Items}}
  <article class="menu-item{{if eq .ID $.Highlighted}} highlight{{end}}" id="item-{{.ID}}">
    <img src="{{.Image}}" alt="{{.Name}}" loading="lazy">
    <div>
      <h3>{{.Name}}</h3>
      {{with .SubCategory}}<span class="tag">{{.}}</span>{{end}}
      <p>{{.Description}}</p>
      <span class="price">{{.Price}}</span>
    </div>
  </article>
{{end}}
</div>{{end}}`

const restaurantsTemplate = `{{define "content"}}
<section class="restaurants">
  <h1>Nos Restaurants</h1>
  <div class="grid">
  {{range .Restaurants}}
    <article class="card" id="restaurant-{{.ID}}">
      <img src="{{.Image}}" alt="{{.Name}}" loading="lazy">
      <h3>{{.Name}}</h3>
      <p class="address">{{.Address}}</p>
      <p class="hours">{{.Hours}}</p>
      <p class="phone"><a href="tel:{{.Phone}}">{{.Phone}}</a></p>
    </article>
  {{end}}
  </div>
</section>
{{end}}`

const contactTemplate = `{{define "content"}}
<section class="contact">
  <div class="card">
    <h2>Envoyez-nous un message</h2>
    <form id="contact-form" method="post" action="/contact">
      <label for="name">Nom</label>
      <input id="name" name="name" type="text" required>
      <label for="email">Email</label>
      <input id="email" name="email" type="email" required>
      <label for="message">Message</label>
      <textarea id="message" name="message" rows="5" required></textarea>
      <button type="submit" data-idle="Envoyer" data-busy="{{.Contact.Submitting}}">Envoyer</button>
      <p id="contact-status" class="status {{.Contact.State}}" role="status">{{.Contact.Message}}</p>
    </form>
  </div>
  <aside>
    <h2>Informations de Contact</h2>
    <h3>Adresse Principale</h3>
    <p>{{.Contact.Info.Address}}</p>
    <h3>Téléphone</h3>
    <p>{{.Contact.Info.Phone}}</p>
    <h3>Email</h3>
    <p><a href="mailto:{{.Contact.Info.Email}}">{{.Contact.Info.Email}}</a></p>
    <h3>Horaires d'ouverture</h3>
    <p>{{.Contact.Info.Hours}}</p>
    {{with .Contact.Info.Reservations}}<h2>Réservations</h2><p>{{.}}</p>{{end}}
  </aside>
</section>
{{end}}`

const cssContent = `*,*::before,*::after{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",sans-serif;background:var(--bg);color:var(--text);transition:background .2s,color .2s}
a{color:var(--primary)}
h1,h2,h3{color:var(--heading);font-family:Georgia,serif}
main{max-width:72rem;margin:0 auto;padding:1.5rem}
img{max-width:100%;display:block}

.top-bar{display:flex;align-items:center;gap:1.5rem;padding:1rem 1.5rem;background:var(--card);box-shadow:0 1px 4px rgba(0,0,0,.1);position:sticky;top:0;z-index:10}
.top-bar .brand{font-weight:700;font-size:1.25rem;text-decoration:none;color:var(--heading)}
.top-bar nav{display:flex;gap:1rem;flex:1}
.top-bar nav a{text-decoration:none;color:var(--text)}
.top-bar nav a.active{color:var(--primary);font-weight:600}
.theme-toggle{border:0;background:transparent;font-size:1.3rem;cursor:pointer;color:var(--secondary)}
html.light .theme-toggle .sun,html.dark .theme-toggle .moon{display:none}

.button{display:inline-block;padding:.6rem 1.2rem;border-radius:.5rem;background:var(--primary);color:#fff;text-decoration:none}
.button.secondary{background:transparent;border:2px solid var(--primary);color:var(--primary)}
.underline{border-bottom:4px solid #f8c136}

.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(16rem,1fr));gap:1.25rem}
.card{background:var(--card);border-radius:.75rem;box-shadow:0 2px 8px rgba(0,0,0,.08);padding:1rem;overflow:hidden}
.card img{border-radius:.5rem;aspect-ratio:4/3;object-fit:cover;width:100%}

.hero{display:grid;grid-template-columns:1fr 1fr;gap:2rem;align-items:center;padding:2rem 0}
.news-item{display:flex;gap:1rem;margin-bottom:1rem}
.news-item img{width:12rem}

.categories{display:flex;flex-wrap:wrap;gap:.5rem;margin-bottom:1.5rem}
.categories a{padding:.4rem .9rem;border-radius:999px;border:1px solid var(--primary);text-decoration:none}
.categories a.active{background:var(--primary);color:#fff}
.menu-item{display:flex;gap:1rem;background:var(--card);border-radius:.75rem;margin-bottom:1rem;overflow:hidden;transition:box-shadow .3s}
.menu-item img{width:8rem;height:8rem;object-fit:cover}
.menu-item .price{color:var(--primary);font-weight:700}
.menu-item.highlight{box-shadow:0 0 0 3px var(--secondary)}
.tag{font-size:.75rem;color:var(--secondary)}

.contact{display:grid;grid-template-columns:3fr 2fr;gap:2rem}
.contact form{display:flex;flex-direction:column;gap:.5rem}
.contact input,.contact textarea{padding:.6rem;border-radius:.4rem;border:1px solid #ccc;background:var(--bg);color:var(--text)}
.contact button{margin-top:.5rem;padding:.7rem;border:0;border-radius:.5rem;background:var(--primary);color:#fff;cursor:pointer}
.contact button:disabled{opacity:.6;cursor:wait}
.status.success{color:#2e7d32}
.status.error{color:#c62828}

.splash{min-height:80vh;display:flex;flex-direction:column;align-items:center;justify-content:center;text-align:center}

@media (max-width:48rem){.hero,.contact{grid-template-columns:1fr}.top-bar nav{display:none}}
`

// jsContent drives the page after load: the theme toggle, the deferred
// scroll to a deep-linked menu item and the contact form.
const jsContent = `(function () {
  var root = document.documentElement;
  var KEY = root.getAttribute("data-theme-cookie") || "theme";
  var tab = window.craftburgerTab || "";

  function stored() {
    return new RegExp("(?:^|; )" + KEY + "=(light|dark)(?:;|$)").test(document.cookie);
  }

  function postTheme(body) {
    return fetch("/theme", {
      method: "POST",
      credentials: "same-origin",
      headers: {
        "Accept": "application/json",
        "Content-Type": "application/x-www-form-urlencoded",
        "X-Tab-ID": tab
      },
      body: body
    }).then(function (r) { return r.json(); }).then(function (d) {
      document.dispatchEvent(new CustomEvent("themeChanged", { detail: d }));
    });
  }

  var toggle = document.getElementById("theme-toggle");
  if (toggle) {
    toggle.addEventListener("click", function () {
      postTheme("").catch(function () {
        if (window.applyTheme) window.applyTheme(root.classList.contains("dark") ? "light" : "dark");
      });
    });
  }

  if (window.matchMedia) {
    var mq = window.matchMedia("(prefers-color-scheme: dark)");
    var onSystem = function (e) {
      if (!stored()) postTheme("system=" + (e.matches ? "dark" : "light")).catch(function () {});
    };
    if (mq.addEventListener) mq.addEventListener("change", onSystem);
  }

  function locate() {
    var body = document.body;
    var anchor = body.getAttribute("data-scroll-anchor");
    if (body.getAttribute("data-scroll") === "deferred" && anchor) {
      var el = document.getElementById(anchor);
      if (el) {
        requestAnimationFrame(function () {
          el.scrollIntoView({ behavior: "smooth", block: "center" });
          el.classList.add("highlight");
        });
        return;
      }
    }
    window.scrollTo(0, 0);
  }

  function contactForm() {
    var form = document.getElementById("contact-form");
    if (!form) return;
    var status = document.getElementById("contact-status");
    var button = form.querySelector("button[type=submit]");
    var busy = false;

    form.addEventListener("submit", function (e) {
      e.preventDefault();
      if (busy) return;
      busy = true;
      button.disabled = true;
      button.textContent = button.getAttribute("data-busy");
      status.className = "status submitting";
      status.textContent = "";

      fetch("/contact", {
        method: "POST",
        credentials: "same-origin",
        headers: { "Accept": "application/json" },
        body: new URLSearchParams(new FormData(form))
      }).then(function (r) { return r.json(); }).then(function (d) {
        status.className = "status " + d.state;
        status.textContent = d.message;
        if (d.state === "success") form.reset();
      }).catch(function () {
        status.className = "status error";
        status.textContent = "Une erreur s'est produite. Veuillez réessayer plus tard.";
      }).then(function () {
        busy = false;
        button.disabled = false;
        button.textContent = button.getAttribute("data-idle");
      });
    });
  }

  function ready() {
    locate();
    contactForm();
  }

  if (document.readyState === "loading") document.addEventListener("DOMContentLoaded", ready);
  else ready();
})();
`

const faviconContent = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><path d="M8 30a24 18 0 0 1 48 0z" fill="#f8c136"/><rect x="6" y="32" width="52" height="8" rx="3" fill="#9b2226"/><path d="M8 44h48a6 6 0 0 1-6 8H14a6 6 0 0 1-6-8z" fill="#f8c136"/></svg>`
