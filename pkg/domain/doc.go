/*
Package domain contains the core types shared across Curio.

These types are transport-agnostic: the backend client decodes remote
service payloads into them, and the HTTP adapter renders them. They
carry no behavior beyond small conveniences.
*/
package domain
