/*
Package spafallback serves "Single Page Applications" (SPAs) during local
development, supporting client-side DOM routing without any server-side route
configuration.

The SPAHandler type implements http.Handler to serve the SPA and its static
resources from any resource provider implementing the fs.FS interface, such as
os.DirFS or an embed.FS. Request paths with a file extension are served as
static assets, and so are extensionless paths naming a regular file. All other
paths get the index document instead (usually "index.html"), so that the SPA's
router can make sense of them. EffectivePath implements this routing decision
on its own, without serving anything.

Please note that missing extensioned assets result in a 404, whereas missing
extensionless routes always succeed with the index document: the server cannot
tell valid client-side routes from mistyped ones.
*/
package spafallback
